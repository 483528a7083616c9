package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createUsersTable(db); err != nil {
		return err
	}
	if err := createDefectsTable(db); err != nil {
		return err
	}
	for _, table := range MasterTables {
		if err := createMasterTable(db, table); err != nil {
			return err
		}
	}
	if err := createMJRTable(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createUsersTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			department TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create users table: %v", err)
		return err
	}
	return nil
}

func createDefectsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS all_defects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			defect_name TEXT UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create all_defects table: %v", err)
		return err
	}
	return nil
}

func createMJRTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS mjr_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			mjr_no TEXT UNIQUE NOT NULL,
			report_date DATE,
			customer TEXT,
			prod_code TEXT,
			mc_no TEXT,
			shift TEXT,
			defect_name TEXT,
			defect_details TEXT,
			quantity_rolls INT NOT NULL DEFAULT 0,
			quantity_kg NUMERIC(12,2) NOT NULL DEFAULT 0,
			judgement TEXT,
			raised_by TEXT,
			approved_by TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create mjr_records table: %v", err)
		return err
	}
	return nil
}

func createMasterTable(db *sql.DB, table string) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			form_id UUID PRIMARY KEY,
			traceability_code TEXT NOT NULL,
			lot_letter TEXT,
			lot_no TEXT,
			customer TEXT,
			production_no TEXT,
			prod_code TEXT,
			spec TEXT,
			production_date DATE,
			emboss_type TEXT,
			printed BOOLEAN DEFAULT false,
			non_printed BOOLEAN DEFAULT false,
			ct BOOLEAN DEFAULT false,
			year TEXT,
			month TEXT,
			date TEXT,
			mc_no TEXT,
			shift TEXT,
			supervisor TEXT,
			supervisor2 TEXT,
			line_leader TEXT,
			line_leader2 TEXT,
			operator TEXT,
			operator2 TEXT,
			qc_inspector TEXT,
			qc_inspector2 TEXT,
			status TEXT DEFAULT 'draft',
			inspected_by TEXT DEFAULT '',
			arm TEXT DEFAULT '',
			roll_weights JSONB NOT NULL DEFAULT '{}',
			roll_widths JSONB NOT NULL DEFAULT '{}',
			film_weights_gsm JSONB NOT NULL DEFAULT '{}',
			thickness_data JSONB NOT NULL DEFAULT '{}',
			roll_diameters JSONB NOT NULL DEFAULT '{}',
			accept_reject_status JSONB NOT NULL DEFAULT '{}',
			defect_names JSONB NOT NULL DEFAULT '{}',
			remarks_data JSONB NOT NULL DEFAULT '{}',
			film_appearance JSONB NOT NULL DEFAULT '{}',
			printing_quality JSONB NOT NULL DEFAULT '{}',
			roll_appearance JSONB NOT NULL DEFAULT '{}',
			paper_core_data JSONB NOT NULL DEFAULT '{}',
			time_data JSONB NOT NULL DEFAULT '{}',
			accepted_rolls INT NOT NULL DEFAULT 0,
			rejected_rolls INT NOT NULL DEFAULT 0,
			rework_rolls INT NOT NULL DEFAULT 0,
			kiv_rolls INT NOT NULL DEFAULT 0,
			accepted_weight NUMERIC(12,2) NOT NULL DEFAULT 0,
			rejected_weight NUMERIC(12,2) NOT NULL DEFAULT 0,
			rework_weight NUMERIC(12,2) NOT NULL DEFAULT 0,
			kiv_weight NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_weight NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_rolls INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (traceability_code, lot_letter)
		);
		CREATE INDEX IF NOT EXISTS idx_%s_trace ON %s (traceability_code);
	`, table, table, table)
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create %s table: %v", table, err)
		return err
	}
	return nil
}
