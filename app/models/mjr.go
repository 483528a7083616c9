package models

import "time"

// MJRRecord is one material judgement report row.
type MJRRecord struct {
	ID            string    `json:"id"`
	MJRNo         string    `json:"mjr_no"`
	ReportDate    *string   `json:"report_date"`
	Customer      *string   `json:"customer"`
	ProdCode      *string   `json:"prod_code"`
	McNo          *string   `json:"mc_no"`
	Shift         *string   `json:"shift"`
	DefectName    *string   `json:"defect_name"`
	DefectDetails *string   `json:"defect_details"`
	QuantityRolls int       `json:"quantity_rolls"`
	QuantityKG    float64   `json:"quantity_kg"`
	Judgement     *string   `json:"judgement"`
	RaisedBy      *string   `json:"raised_by"`
	ApprovedBy    *string   `json:"approved_by"`
	CreatedAt     time.Time `json:"created_at"`
}
