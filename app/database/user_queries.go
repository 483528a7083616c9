package database

import (
	"database/sql"
	"strings"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/lib/pq"
)

// Departments whose members appear in the inspector autocomplete.
var inspectorDepartments = []string{
	"quality control", "production", "quality assurance", "qc", "qa",
}

// Department name fragments that mark a user as a QC inspector for the IPQC
// defect summary.
var qcDepartmentTerms = []string{
	"quality control", "qc", "quality", "ipqc", "inspection",
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, email, password, full_name, COALESCE(department, ''),
		is_active, created_at, updated_at
		FROM users WHERE email = $1 AND deleted_at IS NULL`
	var user models.User
	err := db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Password,
		&user.FullName, &user.Department, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	query := `SELECT id, email, password, full_name, COALESCE(department, ''),
		is_active, created_at, updated_at
		FROM users WHERE id = $1 AND deleted_at IS NULL`
	var user models.User
	err := db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.Password,
		&user.FullName, &user.Department, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *sql.DB, user *models.User, hashedPassword string) error {
	query := `INSERT INTO users (email, password, full_name, department, is_active)
		VALUES ($1, $2, $3, $4, true) RETURNING id, created_at, updated_at`
	return db.QueryRow(query, user.Email, hashedPassword, user.FullName,
		user.Department).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// GetInspectorNames returns active users from the inspection-relevant
// departments, for the inspector autocomplete.
func GetInspectorNames(db *sql.DB) ([]string, error) {
	query := `SELECT full_name FROM users
		WHERE is_active = true AND deleted_at IS NULL
		AND LOWER(COALESCE(department, '')) = ANY($1)
		ORDER BY full_name`
	rows, err := db.Query(query, pq.Array(inspectorDepartments))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetQCInspectors returns the set of user full names whose department marks
// them as quality-control staff.
func GetQCInspectors(db *sql.DB) (map[string]bool, error) {
	query := `SELECT full_name, COALESCE(department, '') FROM users
		WHERE is_active = true AND deleted_at IS NULL`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inspectors := make(map[string]bool)
	for rows.Next() {
		var name, department string
		if err := rows.Scan(&name, &department); err != nil {
			return nil, err
		}
		dept := strings.ToLower(department)
		for _, term := range qcDepartmentTerms {
			if strings.Contains(dept, term) {
				inspectors[name] = true
				break
			}
		}
	}
	return inspectors, rows.Err()
}
