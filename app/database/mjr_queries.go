package database

import (
	"database/sql"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// GetMJRRecord fetches one material judgement report by id.
func GetMJRRecord(db *sql.DB, id string) (*models.MJRRecord, error) {
	query := `SELECT id, mjr_no, report_date::text, customer, prod_code, mc_no,
		shift, defect_name, defect_details, quantity_rolls, quantity_kg,
		judgement, raised_by, approved_by, created_at
		FROM mjr_records WHERE id = $1`

	var r models.MJRRecord
	err := db.QueryRow(query, id).Scan(&r.ID, &r.MJRNo, &r.ReportDate,
		&r.Customer, &r.ProdCode, &r.McNo, &r.Shift,
		&r.DefectName, &r.DefectDetails, &r.QuantityRolls, &r.QuantityKG,
		&r.Judgement, &r.RaisedBy, &r.ApprovedBy, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetLotsByDate loads every lot recorded on one production date, optionally
// limited to a single machine. Used by the production-defects export.
func GetLotsByDate(db *sql.DB, date, mcNo string) ([]*models.InspectionLot, error) {
	tables := MasterTables
	if mcNo != "" {
		tables = []string{TableForMachine(mcNo)}
	}

	var lots []*models.InspectionLot
	for _, table := range tables {
		batch, err := lotsByDateFromTable(db, table, date)
		if err != nil {
			return nil, err
		}
		lots = append(lots, batch...)
	}
	return lots, nil
}

func lotsByDateFromTable(db *sql.DB, table, date string) ([]*models.InspectionLot, error) {
	query := `SELECT ` + lotColumns + ` FROM ` + table +
		` WHERE production_date::text = $1 ORDER BY created_at ASC`
	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*models.InspectionLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}
