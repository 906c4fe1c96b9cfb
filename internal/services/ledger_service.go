package services

import (
	"context"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

// LedgerService is the only write path into the ledger besides the
// domain services that append entries for their own records.
type LedgerService interface {
	Record(ctx context.Context, input RecordInput) (*models.LedgerEntry, error)
	List(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error)
	Summary(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error)
}

type RecordInput struct {
	Direction   string          `json:"direction" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OwnerKind   string          `json:"owner_kind" binding:"required"`
	OwnerID     uint            `json:"owner_id" binding:"required"`
	RecordedAt  *time.Time      `json:"recorded_at"`
}

type ledgerService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewLedgerService(store *repository.Store, cache SummaryCache, now Clock) LedgerService {
	return &ledgerService{store: store, cache: cache, now: systemClock(now)}
}

func (s *ledgerService) Record(ctx context.Context, input RecordInput) (*models.LedgerEntry, error) {
	kind, err := models.ParseOwnerKind(input.OwnerKind)
	if err != nil {
		return nil, err
	}
	owner, err := models.NewLedgerOwner(kind, input.OwnerID)
	if err != nil {
		return nil, err
	}
	dir, err := models.ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}

	var entry *models.LedgerEntry
	err = ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		entry, err = appendEntry(ctx, tx, owner, dir, input.Amount, input.Description, orNow(input.RecordedAt, s.now))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) List(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error) {
	return s.store.Ledger.Find(ctx, filter)
}

func (s *ledgerService) Summary(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error) {
	var version int64
	if s.cache != nil {
		summary, v, ok := s.cache.Get(ctx, filter)
		if ok {
			return summary, nil
		}
		version = v
	}
	summary, err := s.store.Ledger.Summarize(ctx, filter)
	if err != nil {
		return models.LedgerSummary{}, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, filter, version, summary)
	}
	return summary, nil
}
