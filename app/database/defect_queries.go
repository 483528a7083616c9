package database

import (
	"database/sql"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// GetActiveDefects returns the active defect catalog, alphabetical.
func GetActiveDefects(db *sql.DB) ([]models.Defect, error) {
	query := `SELECT id, defect_name, is_active, created_at
		FROM all_defects WHERE is_active = true ORDER BY defect_name`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defects := make([]models.Defect, 0)
	for rows.Next() {
		var d models.Defect
		if err := rows.Scan(&d.ID, &d.DefectName, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, err
		}
		defects = append(defects, d)
	}
	return defects, rows.Err()
}

// ActiveDefectNames returns just the names, for the autocomplete provider
// and the X/O defect auto-fill.
func ActiveDefectNames(db *sql.DB) ([]string, error) {
	defects, err := GetActiveDefects(db)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(defects))
	for _, d := range defects {
		names = append(names, d.DefectName)
	}
	return names, nil
}
