package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// FilterOptions holds the distinct values offered by the forms-list filter
// bar. Date, machine, product code and shift cascade: each list honors the
// filters chosen before it. The person filters are independent.
type FilterOptions struct {
	Dates        []string `json:"dates"`
	Machines     []string `json:"machines"`
	ProdCodes    []string `json:"prod_codes"`
	Shifts       []string `json:"shifts"`
	Operators    []string `json:"operators"`
	Supervisors  []string `json:"supervisors"`
	QCInspectors []string `json:"qc_inspectors"`
}

// ListFilterOptions builds the filter bar contents for the forms list.
func ListFilterOptions(db *sql.DB, f FormFilters) (*FilterOptions, error) {
	opts := &FilterOptions{}
	var err error

	if opts.Dates, err = distinctUnion(db, "production_date::text", FormFilters{}); err != nil {
		return nil, err
	}
	if opts.Machines, err = distinctUnion(db, "mc_no", FormFilters{Date: f.Date}); err != nil {
		return nil, err
	}
	if opts.ProdCodes, err = distinctUnion(db, "prod_code", FormFilters{Date: f.Date, McNo: f.McNo}); err != nil {
		return nil, err
	}
	if opts.Shifts, err = distinctUnion(db, "shift", FormFilters{Date: f.Date, McNo: f.McNo, ProdCode: f.ProdCode}); err != nil {
		return nil, err
	}
	if opts.Operators, err = distinctUnion(db, "operator", FormFilters{}); err != nil {
		return nil, err
	}
	if opts.Supervisors, err = distinctUnion(db, "supervisor", FormFilters{}); err != nil {
		return nil, err
	}
	if opts.QCInspectors, err = distinctUnion(db, "qc_inspector", FormFilters{}); err != nil {
		return nil, err
	}
	return opts, nil
}

func distinctUnion(db *sql.DB, column string, f FormFilters) ([]string, error) {
	conditions := []string{
		"customer IS NOT NULL", "customer <> ''",
		fmt.Sprintf("%s IS NOT NULL", column),
	}
	var args []interface{}
	argIndex := 1

	addFilter := func(col, value string) {
		if value != "" {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", col, argIndex))
			args = append(args, value)
			argIndex++
		}
	}
	addFilter("production_date::text", f.Date)
	addFilter("mc_no", f.McNo)
	addFilter("prod_code", f.ProdCode)
	addFilter("shift", f.Shift)

	where := strings.Join(conditions, " AND ")
	selects := make([]string, 0, len(MasterTables))
	for _, table := range MasterTables {
		selects = append(selects, fmt.Sprintf("SELECT DISTINCT %s AS v FROM %s WHERE %s",
			column, table, where))
	}
	query := strings.Join(selects, " UNION ALL ")
	query = renumberPlaceholders(query, len(args), len(MasterTables))
	query = fmt.Sprintf("SELECT DISTINCT v FROM (%s) AS u ORDER BY v", query)

	allArgs := make([]interface{}, 0, len(args)*len(MasterTables))
	for range MasterTables {
		allArgs = append(allArgs, args...)
	}

	rows, err := db.Query(query, allArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values, rows.Err()
}
