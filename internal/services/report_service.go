package services

import (
	"context"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

type ReportService interface {
	List(ctx context.Context, filter models.ReportFilter) ([]models.ReportSnapshot, error)
}

type reportService struct {
	store *repository.Store
}

func NewReportService(store *repository.Store) ReportService {
	return &reportService{store: store}
}

func (s *reportService) List(ctx context.Context, filter models.ReportFilter) ([]models.ReportSnapshot, error) {
	return s.store.Reports.Find(ctx, filter)
}
