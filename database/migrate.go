package database

import (
	"fmt"

	"workforce-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Partial unique indexes for the soft-delete invariants
// - Basic CHECK constraints
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Client{},
			&models.Collaborator{},
			&models.Assignment{},
			&models.WorkOrder{},
			&models.WorkOrderCollaborator{},
			&models.CheckRecord{},
			&models.BreakPeriod{},
			&models.SurchargeRule{},
			&models.CollaboratorRate{},
			&models.ClientRate{},
			&models.Invoice{},
			&models.InvoiceAssignment{},
			&models.SurchargeDetail{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE assignments         ALTER COLUMN base_hourly_cost TYPE numeric(12,2)`,
			`ALTER TABLE collaborator_rates  ALTER COLUMN hourly_cost      TYPE numeric(12,2)`,
			`ALTER TABLE client_rates        ALTER COLUMN hourly_price     TYPE numeric(12,2)`,
			`ALTER TABLE invoices            ALTER COLUMN total_amount_company              TYPE numeric(12,2)`,
			`ALTER TABLE invoices            ALTER COLUMN total_amount_collaborator         TYPE numeric(12,2)`,
			`ALTER TABLE invoices            ALTER COLUMN total_with_surcharge_company      TYPE numeric(12,2)`,
			`ALTER TABLE invoices            ALTER COLUMN total_with_surcharge_collaborator TYPE numeric(12,2)`,
			`ALTER TABLE invoice_assignments ALTER COLUMN regular_amount_company      TYPE numeric(12,2)`,
			`ALTER TABLE invoice_assignments ALTER COLUMN regular_amount_collaborator TYPE numeric(12,2)`,
			`ALTER TABLE invoice_assignments ALTER COLUMN total_amount_company        TYPE numeric(12,2)`,
			`ALTER TABLE invoice_assignments ALTER COLUMN total_amount_collaborator   TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Partial unique indexes (soft delete aware; idempotent) ---
		// One live invoice per (collaborator, work order); invoice numbers
		// unique among live invoices only.
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_live_pair ON invoices (collaborator_id, work_order_id) WHERE NOT deleted`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_live_number ON invoices (invoice_number) WHERE NOT deleted AND invoice_number <> ''`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_assignments_invoice ON invoice_assignments (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_surcharge_details_line ON surcharge_details (invoice_assignment_id)`,
			`CREATE INDEX IF NOT EXISTS idx_break_periods_check_record ON break_periods (check_record_id)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'surcharge_rules'::regclass
					  AND conname  = 'chk_surcharge_rules_min_hour_nonneg'
				) THEN
					ALTER TABLE surcharge_rules
					ADD CONSTRAINT chk_surcharge_rules_min_hour_nonneg
					CHECK (min_hour >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'assignments'::regclass
					  AND conname  = 'chk_assignments_base_cost_nonneg'
				) THEN
					ALTER TABLE assignments
					ADD CONSTRAINT chk_assignments_base_cost_nonneg
					CHECK (base_hourly_cost >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_hours_nonneg'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_hours_nonneg
					CHECK (total_hours_worked >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
