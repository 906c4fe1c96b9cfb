package migrations

import (
	"context"
	"fmt"
	"log"
	"strings"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
	"transport_manager/internal/services"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Tables lists every model in dependency order.
var Tables = []interface{}{
	&models.User{},
	&models.Client{},
	&models.Supplier{},
	&models.Product{},
	&models.Employee{},
	&models.Vehicle{},
	&models.HeavyEquipment{},
	&models.SupplierOrder{},
	&models.SupplierOrderLine{},
	&models.StockLot{},
	&models.ClientOrder{},
	&models.OrderLine{},
	&models.Payment{},
	&models.EquipmentRental{},
	&models.FuelDelivery{},
	&models.FuelUsage{},
	&models.MachineExpense{},
	&models.SalaryPayment{},
	&models.DriverBudget{},
	&models.LedgerEntry{},
	&models.ReportSnapshot{},
}

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20240101_create_master_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Client{}, &models.Supplier{}, &models.Product{},
					&models.Employee{}, &models.Vehicle{}, &models.HeavyEquipment{})
			},
		},
		{
			ID: "20240102_create_order_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.SupplierOrder{}, &models.SupplierOrderLine{}, &models.StockLot{},
					&models.ClientOrder{}, &models.OrderLine{}, &models.Payment{})
			},
		},
		{
			ID: "20240103_create_fleet_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.EquipmentRental{}, &models.FuelDelivery{}, &models.FuelUsage{},
					&models.MachineExpense{}, &models.SalaryPayment{}, &models.DriverBudget{})
			},
		},
		{
			ID: "20240104_create_ledger_and_reports",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.LedgerEntry{}, &models.ReportSnapshot{})
			},
		},
		{
			ID: "20240105_ledger_constraints",
			Migrate: func(tx *gorm.DB) error {
				stmts := []string{
					"ALTER TABLE ledger_entries ADD CONSTRAINT chk_ledger_amount CHECK (amount > 0)",
					"ALTER TABLE ledger_entries ADD CONSTRAINT chk_ledger_direction CHECK (direction IN ('inflow', 'outflow'))",
					"ALTER TABLE ledger_entries ADD CONSTRAINT chk_ledger_owner_kind CHECK (owner_kind IN (" + ownerKindList() + "))",
					"ALTER TABLE stock_lots ADD CONSTRAINT chk_stock_sold CHECK (sold_quantity >= 0 AND sold_quantity <= total_quantity)",
				}
				for _, stmt := range stmts {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				stmts := []string{
					"ALTER TABLE ledger_entries DROP CONSTRAINT IF EXISTS chk_ledger_amount",
					"ALTER TABLE ledger_entries DROP CONSTRAINT IF EXISTS chk_ledger_direction",
					"ALTER TABLE ledger_entries DROP CONSTRAINT IF EXISTS chk_ledger_owner_kind",
					"ALTER TABLE stock_lots DROP CONSTRAINT IF EXISTS chk_stock_sold",
				}
				for _, stmt := range stmts {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func ownerKindList() string {
	quoted := make([]string, len(models.OwnerKinds))
	for i, k := range models.OwnerKinds {
		quoted[i] = "'" + string(k) + "'"
	}
	return strings.Join(quoted, ", ")
}

// RunMigrations applies pending migrations and creates the admin account.
func RunMigrations(db *gorm.DB, adminPassword string) error {
	log.Println("Running database migrations...")

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := createDefaultData(db, adminPassword); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// DropAll removes every table, including the migration bookkeeping.
func DropAll(db *gorm.DB) error {
	tables := append([]interface{}{}, Tables...)
	tables = append(tables, gormigrate.DefaultOptions.TableName)
	return db.Migrator().DropTable(tables...)
}

func createDefaultData(db *gorm.DB, adminPassword string) error {
	log.Println("Creating default data...")
	userService := services.NewUserService(repository.NewUserRepository(db))
	return userService.EnsureAdmin(context.Background(), adminPassword)
}
