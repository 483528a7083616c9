package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// The inline inspection master data is partitioned by machine across three
// identical tables. Every query that spans "all forms" unions the three.
var MasterTables = []string{
	"inline_inspection_form_master_1",
	"inline_inspection_form_master_2",
	"inline_inspection_form_master_3",
}

// TableForMachine maps a machine number to its master table.
func TableForMachine(mcNo string) string {
	switch mcNo {
	case "1", "01":
		return MasterTables[0]
	case "2", "02":
		return MasterTables[1]
	case "3", "03":
		return MasterTables[2]
	}
	return MasterTables[0]
}

const lotColumns = `form_id, traceability_code, COALESCE(lot_letter, ''), lot_no,
	customer, production_no, prod_code, spec, production_date::text, emboss_type,
	COALESCE(printed, false), COALESCE(non_printed, false), COALESCE(ct, false),
	COALESCE(year, ''), COALESCE(month, ''), COALESCE(date, ''),
	COALESCE(mc_no, ''), COALESCE(shift, ''),
	supervisor, supervisor2, line_leader, line_leader2,
	operator, operator2, qc_inspector, qc_inspector2,
	COALESCE(status, 'draft'), COALESCE(inspected_by, ''), COALESCE(arm, ''),
	roll_weights, roll_widths, film_weights_gsm, thickness_data, roll_diameters,
	accept_reject_status, defect_names, remarks_data,
	film_appearance, printing_quality, roll_appearance, paper_core_data, time_data,
	COALESCE(accepted_rolls, 0), COALESCE(rejected_rolls, 0),
	COALESCE(rework_rolls, 0), COALESCE(kiv_rolls, 0),
	COALESCE(accepted_weight, 0), COALESCE(rejected_weight, 0),
	COALESCE(rework_weight, 0), COALESCE(kiv_weight, 0),
	COALESCE(total_weight, 0), COALESCE(total_rolls, 0),
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*models.InspectionLot, error) {
	var lot models.InspectionLot
	var rollWeights, rollWidths, filmWeights, thickness, diameters []byte
	var statuses, defects, remarks []byte
	var filmApp, printing, rollApp, paperCore, timeData []byte

	err := row.Scan(
		&lot.FormID, &lot.TraceabilityCode, &lot.LotLetter, &lot.LotNo,
		&lot.Customer, &lot.ProductionNo, &lot.ProdCode, &lot.Spec,
		&lot.ProductionDate, &lot.EmbossType,
		&lot.Printed, &lot.NonPrinted, &lot.CT,
		&lot.Year, &lot.Month, &lot.Date, &lot.McNo, &lot.Shift,
		&lot.Supervisor, &lot.Supervisor2, &lot.LineLeader, &lot.LineLeader2,
		&lot.Operator, &lot.Operator2, &lot.QCInspector, &lot.QCInspector2,
		&lot.Status, &lot.InspectedBy, &lot.Arm,
		&rollWeights, &rollWidths, &filmWeights, &thickness, &diameters,
		&statuses, &defects, &remarks,
		&filmApp, &printing, &rollApp, &paperCore, &timeData,
		&lot.Summary.AcceptedRolls, &lot.Summary.RejectedRolls,
		&lot.Summary.ReworkRolls, &lot.Summary.KIVRolls,
		&lot.Summary.AcceptedWeight, &lot.Summary.RejectedWeight,
		&lot.Summary.ReworkWeight, &lot.Summary.KIVWeight,
		&lot.Summary.TotalWeight, &lot.TotalRolls,
		&lot.CreatedAt, &lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lot.RollWeights = unmarshalFieldMap(rollWeights)
	lot.RollWidths = unmarshalFieldMap(rollWidths)
	lot.FilmWeightsGSM = unmarshalFieldMap(filmWeights)
	lot.ThicknessData = unmarshalFieldMap(thickness)
	lot.RollDiameters = unmarshalFieldMap(diameters)
	lot.AcceptRejectStatus = unmarshalFieldMap(statuses)
	lot.DefectNames = unmarshalFieldMap(defects)
	lot.RemarksData = unmarshalFieldMap(remarks)
	lot.FilmAppearance = unmarshalNested(filmApp)
	lot.PrintingQuality = unmarshalNested(printing)
	lot.RollAppearance = unmarshalNested(rollApp)
	lot.PaperCoreData = unmarshalNested(paperCore)
	lot.TimeData = unmarshalNested(timeData)
	lot.Summary.TotalRolls = lot.Summary.AcceptedRolls + lot.Summary.RejectedRolls +
		lot.Summary.ReworkRolls + lot.Summary.KIVRolls
	return &lot, nil
}

func unmarshalFieldMap(b []byte) models.FieldMap {
	m := make(models.FieldMap)
	if len(b) > 0 {
		_ = json.Unmarshal(b, &m)
	}
	return m
}

func unmarshalNested(b []byte) map[string]models.FieldMap {
	m := make(map[string]models.FieldMap)
	if len(b) > 0 {
		_ = json.Unmarshal(b, &m)
	}
	return m
}

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// GetLotsByTraceability loads every lot of one shift/machine form, oldest
// first, from the master table owning that machine.
func GetLotsByTraceability(db *sql.DB, table, traceabilityCode string) ([]*models.InspectionLot, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE traceability_code = $1 ORDER BY created_at ASC`,
		lotColumns, table)
	rows, err := db.Query(query, traceabilityCode)
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

// GetLotByFormID fetches a single lot by its form id.
func GetLotByFormID(db *sql.DB, table, formID string) (*models.InspectionLot, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE form_id = $1`, lotColumns, table)
	return scanLot(db.QueryRow(query, formID))
}

// InsertLot creates a new lot record with its JSONB maps and summary columns.
func InsertLot(db *sql.DB, table string, lot *models.InspectionLot) error {
	query := fmt.Sprintf(`INSERT INTO %s (
		form_id, traceability_code, lot_letter, lot_no,
		customer, production_no, prod_code, spec, production_date, emboss_type,
		printed, non_printed, ct, year, month, date, mc_no, shift,
		supervisor, supervisor2, line_leader, line_leader2,
		operator, operator2, qc_inspector, qc_inspector2,
		status, inspected_by, arm,
		roll_weights, roll_widths, film_weights_gsm, thickness_data, roll_diameters,
		accept_reject_status, defect_names, remarks_data,
		film_appearance, printing_quality, roll_appearance, paper_core_data, time_data,
		accepted_rolls, rejected_rolls, rework_rolls, kiv_rolls,
		accepted_weight, rejected_weight, rework_weight, kiv_weight,
		total_weight, total_rolls, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26,
		$27, $28, $29,
		$30, $31, $32, $33, $34, $35, $36, $37,
		$38, $39, $40, $41, $42,
		$43, $44, $45, $46, $47, $48, $49, $50, $51, $52, NOW(), NOW())`, table)

	_, err := db.Exec(query,
		lot.FormID, lot.TraceabilityCode, lot.LotLetter, lot.LotNo,
		lot.Customer, lot.ProductionNo, lot.ProdCode, lot.Spec,
		lot.ProductionDate, lot.EmbossType,
		lot.Printed, lot.NonPrinted, lot.CT,
		lot.Year, lot.Month, lot.Date, lot.McNo, lot.Shift,
		lot.Supervisor, lot.Supervisor2, lot.LineLeader, lot.LineLeader2,
		lot.Operator, lot.Operator2, lot.QCInspector, lot.QCInspector2,
		lot.Status, lot.InspectedBy, lot.Arm,
		marshalJSON(lot.RollWeights), marshalJSON(lot.RollWidths),
		marshalJSON(lot.FilmWeightsGSM), marshalJSON(lot.ThicknessData),
		marshalJSON(lot.RollDiameters), marshalJSON(lot.AcceptRejectStatus),
		marshalJSON(lot.DefectNames), marshalJSON(lot.RemarksData),
		marshalJSON(lot.FilmAppearance), marshalJSON(lot.PrintingQuality),
		marshalJSON(lot.RollAppearance), marshalJSON(lot.PaperCoreData),
		marshalJSON(lot.TimeData),
		lot.Summary.AcceptedRolls, lot.Summary.RejectedRolls,
		lot.Summary.ReworkRolls, lot.Summary.KIVRolls,
		lot.Summary.AcceptedWeight, lot.Summary.RejectedWeight,
		lot.Summary.ReworkWeight, lot.Summary.KIVWeight,
		lot.Summary.TotalWeight, lot.TotalRolls,
	)
	return err
}

// UpdateLotDocument overwrites a lot's full document: every JSONB map, the
// inspected_by/arm fields and the derived summary columns. Last write wins.
func UpdateLotDocument(db *sql.DB, table string, lot *models.InspectionLot) error {
	query := fmt.Sprintf(`UPDATE %s SET
		lot_no = $2, inspected_by = $3, arm = $4,
		roll_weights = $5, roll_widths = $6, film_weights_gsm = $7,
		thickness_data = $8, roll_diameters = $9,
		accept_reject_status = $10, defect_names = $11, remarks_data = $12,
		film_appearance = $13, printing_quality = $14, roll_appearance = $15,
		paper_core_data = $16, time_data = $17,
		accepted_rolls = $18, rejected_rolls = $19, rework_rolls = $20, kiv_rolls = $21,
		accepted_weight = $22, rejected_weight = $23, rework_weight = $24, kiv_weight = $25,
		total_weight = $26, total_rolls = $27, updated_at = NOW()
		WHERE form_id = $1`, table)

	result, err := db.Exec(query,
		lot.FormID, lot.LotNo, lot.InspectedBy, lot.Arm,
		marshalJSON(lot.RollWeights), marshalJSON(lot.RollWidths),
		marshalJSON(lot.FilmWeightsGSM), marshalJSON(lot.ThicknessData),
		marshalJSON(lot.RollDiameters), marshalJSON(lot.AcceptRejectStatus),
		marshalJSON(lot.DefectNames), marshalJSON(lot.RemarksData),
		marshalJSON(lot.FilmAppearance), marshalJSON(lot.PrintingQuality),
		marshalJSON(lot.RollAppearance), marshalJSON(lot.PaperCoreData),
		marshalJSON(lot.TimeData),
		lot.Summary.AcceptedRolls, lot.Summary.RejectedRolls,
		lot.Summary.ReworkRolls, lot.Summary.KIVRolls,
		lot.Summary.AcceptedWeight, lot.Summary.RejectedWeight,
		lot.Summary.ReworkWeight, lot.Summary.KIVWeight,
		lot.Summary.TotalWeight, lot.TotalRolls,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClearLot empties a lot without deleting it: all JSONB maps reset, summary
// zeroed, lot_no set null. Used for the first lot of a shift, which is never
// deleted.
func ClearLot(db *sql.DB, table, formID string) error {
	query := fmt.Sprintf(`UPDATE %s SET
		lot_no = NULL, inspected_by = '',
		roll_weights = '{}', roll_widths = '{}', film_weights_gsm = '{}',
		thickness_data = '{}', roll_diameters = '{}',
		accept_reject_status = '{}', defect_names = '{}', remarks_data = '{}',
		film_appearance = '{}', printing_quality = '{}', roll_appearance = '{}',
		paper_core_data = '{}', time_data = '{}',
		accepted_rolls = 0, rejected_rolls = 0, rework_rolls = 0, kiv_rolls = 0,
		accepted_weight = 0, rejected_weight = 0, rework_weight = 0, kiv_weight = 0,
		total_weight = 0, total_rolls = 0, updated_at = NOW()
		WHERE form_id = $1`, table)
	_, err := db.Exec(query, formID)
	return err
}

// DeleteLot removes a non-first lot record.
func DeleteLot(db *sql.DB, table, formID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE form_id = $1`, table)
	_, err := db.Exec(query, formID)
	return err
}

// ReorderLotNumbers renumbers the surviving lots of a traceability code
// sequentially by creation time ("01", "02", ...). The first lot keeps a
// null lot_no only when it was explicitly cleared, so the repair path
// numbers every row that still holds data.
func ReorderLotNumbers(db *sql.DB, table, traceabilityCode string) error {
	query := fmt.Sprintf(`SELECT form_id FROM %s WHERE traceability_code = $1 ORDER BY created_at ASC`, table)
	rows, err := db.Query(query, traceabilityCode)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	update := fmt.Sprintf(`UPDATE %s SET lot_no = $1, updated_at = NOW() WHERE form_id = $2`, table)
	for i, id := range ids {
		if _, err := db.Exec(update, fmt.Sprintf("%02d", i+1), id); err != nil {
			return err
		}
	}
	return nil
}

// NextLotNumber returns the next 2-digit lot number for a traceability code.
func NextLotNumber(db *sql.DB, table, traceabilityCode string) (string, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(NULLIF(lot_no, '')::int), 0) FROM %s WHERE traceability_code = $1`, table)
	var max int
	if err := db.QueryRow(query, traceabilityCode).Scan(&max); err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", max+1), nil
}

// NextLotLetter returns the first unused lot letter (A-Z) for a traceability
// code.
func NextLotLetter(db *sql.DB, table, traceabilityCode string) (string, error) {
	query := fmt.Sprintf(`SELECT COALESCE(lot_letter, '') FROM %s WHERE traceability_code = $1`, table)
	rows, err := db.Query(query, traceabilityCode)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	used := make(map[string]bool)
	for rows.Next() {
		var letter string
		if err := rows.Scan(&letter); err != nil {
			return "", err
		}
		used[letter] = true
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	for c := 'A'; c <= 'Z'; c++ {
		if !used[string(c)] {
			return string(c), nil
		}
	}
	return "", fmt.Errorf("no lot letters left for %s", traceabilityCode)
}

// RepairFirstLotNumber sets lot_no = "01" on the oldest lot of a
// traceability code when it is null, which happens after a clear.
func RepairFirstLotNumber(db *sql.DB, table, traceabilityCode string) error {
	query := fmt.Sprintf(`UPDATE %s SET lot_no = '01', updated_at = NOW()
		WHERE form_id = (
			SELECT form_id FROM %s WHERE traceability_code = $1 ORDER BY created_at ASC LIMIT 1
		) AND lot_no IS NULL`, table, table)
	_, err := db.Exec(query, traceabilityCode)
	return err
}

// FormFilters narrows the forms list. Date/McNo/ProdCode/Shift cascade on
// the list page; the person filters do not.
type FormFilters struct {
	Date        string
	McNo        string
	ProdCode    string
	Shift       string
	Operator    string
	Supervisor  string
	QCInspector string
}

// FormListItem is one row of the forms list page, drawn from the union of
// the three master tables.
type FormListItem struct {
	FormID           string  `json:"form_id"`
	TraceabilityCode string  `json:"traceability_code"`
	LotLetter        string  `json:"lot_letter"`
	Customer         *string `json:"customer"`
	ProductionNo     *string `json:"production_no"`
	ProdCode         *string `json:"prod_code"`
	Spec             *string `json:"spec"`
	ProductionDate   *string `json:"production_date"`
	McNo             string  `json:"mc_no"`
	Shift            string  `json:"shift"`
	Operator         *string `json:"operator"`
	Supervisor       *string `json:"supervisor"`
	QCInspector      *string `json:"qc_inspector"`
	Status           string  `json:"status"`
	TotalRolls       int     `json:"total_rolls"`
	CreatedAt        string  `json:"created_at"`
}

// ListForms returns valid forms (customer present) across all three master
// tables, newest first, filtered per f. Timestamps are shifted to IST for
// display.
func ListForms(db *sql.DB, f FormFilters) ([]FormListItem, error) {
	conditions := []string{"customer IS NOT NULL", "customer <> ''"}
	var args []interface{}
	argIndex := 1

	addFilter := func(column, value string) {
		if value != "" {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argIndex))
			args = append(args, value)
			argIndex++
		}
	}
	addFilter("production_date::text", f.Date)
	addFilter("mc_no", f.McNo)
	addFilter("prod_code", f.ProdCode)
	addFilter("shift", f.Shift)
	addFilter("operator", f.Operator)
	addFilter("supervisor", f.Supervisor)
	addFilter("qc_inspector", f.QCInspector)

	where := strings.Join(conditions, " AND ")
	selects := make([]string, 0, len(MasterTables))
	for _, table := range MasterTables {
		selects = append(selects, fmt.Sprintf(`SELECT form_id, traceability_code,
			COALESCE(lot_letter, ''), customer, production_no, prod_code, spec,
			production_date::text, COALESCE(mc_no, ''), COALESCE(shift, ''),
			operator, supervisor, qc_inspector, COALESCE(status, 'draft'),
			COALESCE(total_rolls, 0),
			to_char(created_at AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD HH24:MI:SS')
			FROM %s WHERE %s`, table, where))
	}
	query := strings.Join(selects, " UNION ALL ") + " ORDER BY 16 DESC"

	// Each UNION branch reuses the same placeholder list.
	allArgs := make([]interface{}, 0, len(args)*len(MasterTables))
	for range MasterTables {
		allArgs = append(allArgs, args...)
	}
	query = renumberPlaceholders(query, len(args), len(MasterTables))

	rows, err := db.Query(query, allArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]FormListItem, 0)
	for rows.Next() {
		var it FormListItem
		if err := rows.Scan(&it.FormID, &it.TraceabilityCode, &it.LotLetter,
			&it.Customer, &it.ProductionNo, &it.ProdCode, &it.Spec,
			&it.ProductionDate, &it.McNo, &it.Shift,
			&it.Operator, &it.Supervisor, &it.QCInspector,
			&it.Status, &it.TotalRolls, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// renumberPlaceholders rewrites the repeated $1..$n of each UNION branch so
// the i-th branch uses $(i*n+1)..$((i+1)*n).
func renumberPlaceholders(query string, n, branches int) string {
	if n == 0 || branches < 2 {
		return query
	}
	parts := strings.Split(query, " UNION ALL ")
	for i := 1; i < len(parts) && i < branches; i++ {
		offset := i * n
		parts[i] = placeholderPattern.ReplaceAllStringFunc(parts[i], func(m string) string {
			p, _ := strconv.Atoi(m[1:])
			return fmt.Sprintf("$%d", p+offset)
		})
	}
	return strings.Join(parts, " UNION ALL ")
}

// BackfillHeader fills missing header fields of a lot from a sibling lot of
// the same traceability code that has them.
func BackfillHeader(db *sql.DB, table string, lot *models.InspectionLot) {
	if lot.Customer != nil && lot.ProdCode != nil && lot.Spec != nil {
		return
	}
	query := fmt.Sprintf(`SELECT customer, production_no, prod_code, spec,
		production_date::text, emboss_type, COALESCE(printed, false),
		COALESCE(non_printed, false), COALESCE(ct, false), COALESCE(shift, ''),
		COALESCE(mc_no, '')
		FROM %s WHERE traceability_code = $1 AND customer IS NOT NULL LIMIT 1`, table)

	var sibling models.InspectionLot
	err := db.QueryRow(query, lot.TraceabilityCode).Scan(
		&sibling.Customer, &sibling.ProductionNo, &sibling.ProdCode, &sibling.Spec,
		&sibling.ProductionDate, &sibling.EmbossType,
		&sibling.Printed, &sibling.NonPrinted, &sibling.CT,
		&sibling.Shift, &sibling.McNo)
	if err != nil {
		return
	}

	if lot.Customer == nil {
		lot.Customer = sibling.Customer
	}
	if lot.ProductionNo == nil {
		lot.ProductionNo = sibling.ProductionNo
	}
	if lot.ProdCode == nil {
		lot.ProdCode = sibling.ProdCode
	}
	if lot.Spec == nil {
		lot.Spec = sibling.Spec
	}
	if lot.ProductionDate == nil {
		lot.ProductionDate = sibling.ProductionDate
	}
	if lot.EmbossType == nil {
		lot.EmbossType = sibling.EmbossType
	}
	if !lot.Printed {
		lot.Printed = sibling.Printed
	}
	if !lot.NonPrinted {
		lot.NonPrinted = sibling.NonPrinted
	}
	if !lot.CT {
		lot.CT = sibling.CT
	}
	if lot.Shift == "" {
		lot.Shift = sibling.Shift
	}
	if lot.McNo == "" {
		lot.McNo = sibling.McNo
	}
}
