package repository

import (
	"context"

	"transport_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) Find(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.filtered(ctx, filter).Order("recorded_at, id").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) Summarize(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error) {
	var rows []struct {
		Direction models.Direction
		Total     decimal.Decimal
		Count     int64
	}
	err := r.filtered(ctx, filter).
		Select("direction, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return models.LedgerSummary{}, err
	}

	summary := models.LedgerSummary{Inflow: decimal.Zero, Outflow: decimal.Zero, Net: decimal.Zero}
	for _, row := range rows {
		summary.Add(row.Direction, row.Total)
		summary.Count += row.Count
	}
	return summary, nil
}

func (r *ledgerRepository) filtered(ctx context.Context, f models.LedgerFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.LedgerEntry{})
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	}
	if f.OwnerKind != nil {
		q = q.Where("owner_kind = ?", *f.OwnerKind)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.From != nil {
		q = q.Where("recorded_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("recorded_at <= ?", *f.To)
	}
	return q
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Append(ctx context.Context, snapshot *models.ReportSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *reportRepository) Find(ctx context.Context, f models.ReportFilter) ([]models.ReportSnapshot, error) {
	q := r.db.WithContext(ctx).Model(&models.ReportSnapshot{})
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}
	if f.SubjectID != nil {
		q = q.Where("subject_id = ?", *f.SubjectID)
	}
	if f.From != nil {
		q = q.Where("recorded_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("recorded_at <= ?", *f.To)
	}
	var snapshots []models.ReportSnapshot
	err := q.Order("recorded_at, id").Find(&snapshots).Error
	return snapshots, err
}
