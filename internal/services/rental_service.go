package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type RentalService interface {
	Start(ctx context.Context, input StartRentalInput) (*models.RentalView, error)
	Get(ctx context.Context, id uint) (*models.RentalView, error)
	List(ctx context.Context, equipmentID *uint) ([]models.RentalView, error)
	// Close fixes the end date and bills the rental.
	Close(ctx context.Context, id uint, end *time.Time) (*models.RentalView, error)
}

// StartRentalInput opens a rental. DailyPrice defaults to the equipment's
// daily rate when omitted.
type StartRentalInput struct {
	HeavyEquipmentID uint             `json:"heavy_equipment_id" binding:"required"`
	ClientID         uint             `json:"client_id" binding:"required"`
	StartDate        time.Time        `json:"start_date" binding:"required"`
	EndDate          *time.Time       `json:"end_date"`
	DailyPrice       *decimal.Decimal `json:"daily_price"`
	Notes            string           `json:"notes"`
}

type rentalService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewRentalService(store *repository.Store, cache SummaryCache, now Clock) RentalService {
	return &rentalService{store: store, cache: cache, now: systemClock(now)}
}

func (s *rentalService) Start(ctx context.Context, input StartRentalInput) (*models.RentalView, error) {
	if input.EndDate != nil && models.DaysBetween(input.StartDate, *input.EndDate) < 0 {
		return nil, invalid("end_date is before start_date")
	}
	if input.DailyPrice != nil {
		if err := notNegative("daily_price", *input.DailyPrice); err != nil {
			return nil, err
		}
	}

	var rental *models.EquipmentRental
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		equipment, err := tx.Equipment.GetForUpdate(ctx, input.HeavyEquipmentID)
		if err != nil {
			return fmt.Errorf("heavy equipment %d: %w", input.HeavyEquipmentID, err)
		}
		ok, err := tx.Clients.Exists(ctx, input.ClientID)
		if err := mustExist(ok, err, "client", input.ClientID); err != nil {
			return err
		}

		existing, err := tx.Rentals.GetByEquipmentID(ctx, equipment.ID)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].Overlaps(input.StartDate, input.EndDate) {
				return fmt.Errorf("%w: %s is rented under #%d", ErrEquipmentBusy, equipment.Name, existing[i].ID)
			}
		}

		price := equipment.DailyRate
		if input.DailyPrice != nil {
			price = *input.DailyPrice
		}
		rental = &models.EquipmentRental{
			HeavyEquipmentID: equipment.ID,
			ClientID:         input.ClientID,
			StartDate:        input.StartDate,
			EndDate:          input.EndDate,
			DailyPrice:       price,
			BilledAmount:     decimal.Zero,
			Notes:            input.Notes,
		}
		return tx.Rentals.Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}
	view := rental.ToView(s.now())
	return &view, nil
}

func (s *rentalService) Get(ctx context.Context, id uint) (*models.RentalView, error) {
	rental, err := s.store.Rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := rental.ToView(s.now())
	return &view, nil
}

func (s *rentalService) List(ctx context.Context, equipmentID *uint) ([]models.RentalView, error) {
	var (
		rentals []models.EquipmentRental
		err     error
	)
	if equipmentID != nil {
		rentals, err = s.store.Rentals.GetByEquipmentID(ctx, *equipmentID)
	} else {
		rentals, err = s.store.Rentals.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	today := s.now()
	views := make([]models.RentalView, len(rentals))
	for i := range rentals {
		views[i] = rentals[i].ToView(today)
	}
	return views, nil
}

// Close ends the rental on end, or on its planned end date, or today,
// whichever is given first. A positive bill is booked as income of the
// equipment.
func (s *rentalService) Close(ctx context.Context, id uint, end *time.Time) (*models.RentalView, error) {
	today := s.now()

	var rental *models.EquipmentRental
	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		var err error
		rental, err = tx.Rentals.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rental.IsClosed() {
			return fmt.Errorf("%w: #%d", ErrRentalClosed, rental.ID)
		}

		endDate := today
		switch {
		case end != nil:
			endDate = *end
		case rental.EndDate != nil:
			endDate = *rental.EndDate
		}
		if models.DaysBetween(rental.StartDate, endDate) < 0 {
			return invalid("end date is before the rental start")
		}

		rental.EndDate = &endDate
		rental.BilledAmount = rental.Billed(today)
		rental.ClosedAt = &today
		if err := tx.Rentals.Update(ctx, rental); err != nil {
			return err
		}

		if rental.BilledAmount.IsPositive() {
			desc := fmt.Sprintf("Rental #%d, %d days", rental.ID, rental.Days(today))
			owner := models.HeavyEquipmentOwner{ID: rental.HeavyEquipmentID}
			if _, err := appendEntry(ctx, tx, owner, models.Inflow, rental.BilledAmount, desc, today); err != nil {
				return err
			}
		}
		return snapshot(ctx, tx, models.ReportEquipmentRental, rental.ID, "closed", rental.BilledAmount, rental.ToView(today), today)
	})
	if err != nil {
		return nil, err
	}
	view := rental.ToView(today)
	return &view, nil
}
