package models

import "time"

// FieldMap holds one grid column's values keyed by roll position ("1", "2", ...).
type FieldMap map[string]string

// InspectionLot is one lot record from an inline_inspection_form_master_N table.
// One lot renders as one grid table; the per-column JSONB maps are the stored
// form of the roll entries.
type InspectionLot struct {
	FormID           string  `json:"form_id"`
	TraceabilityCode string  `json:"traceability_code"`
	LotLetter        string  `json:"lot_letter"`
	LotNo            *string `json:"lot_no"`

	Customer       *string `json:"customer"`
	ProductionNo   *string `json:"production_no"`
	ProdCode       *string `json:"prod_code"`
	Spec           *string `json:"spec"`
	ProductionDate *string `json:"production_date"`
	EmbossType     *string `json:"emboss_type"`
	Printed        bool    `json:"printed"`
	NonPrinted     bool    `json:"non_printed"`
	CT             bool    `json:"ct"`

	Year  string `json:"year"`
	Month string `json:"month"`
	Date  string `json:"date"`
	McNo  string `json:"mc_no"`
	Shift string `json:"shift"`

	Supervisor  *string `json:"supervisor"`
	Supervisor2 *string `json:"supervisor2"`
	LineLeader  *string `json:"line_leader"`
	LineLeader2 *string `json:"line_leader2"`
	Operator    *string `json:"operator"`
	Operator2   *string `json:"operator2"`
	QCInspector *string `json:"qc_inspector"`
	QCInspector2 *string `json:"qc_inspector2"`

	Status      string `json:"status"`
	InspectedBy string `json:"inspected_by"`
	Arm         string `json:"arm"`

	RollWeights        FieldMap            `json:"roll_weights"`
	RollWidths         FieldMap            `json:"roll_widths"`
	FilmWeightsGSM     FieldMap            `json:"film_weights_gsm"`
	ThicknessData      FieldMap            `json:"thickness_data"`
	RollDiameters      FieldMap            `json:"roll_diameters"`
	AcceptRejectStatus FieldMap            `json:"accept_reject_status"`
	DefectNames        FieldMap            `json:"defect_names"`
	RemarksData        FieldMap            `json:"remarks_data"`
	FilmAppearance     map[string]FieldMap `json:"film_appearance"`
	PrintingQuality    map[string]FieldMap `json:"printing_quality"`
	RollAppearance     map[string]FieldMap `json:"roll_appearance"`
	PaperCoreData      map[string]FieldMap `json:"paper_core_data"`
	TimeData           map[string]FieldMap `json:"time_data"`

	Summary    LotSummary `json:"summary"`
	TotalRolls int        `json:"total_rolls"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LotSummary mirrors the derived summary columns of a lot. It is recomputed on
// every save and never treated as source of truth.
type LotSummary struct {
	AcceptedRolls  int     `json:"accepted_rolls"`
	RejectedRolls  int     `json:"rejected_rolls"`
	ReworkRolls    int     `json:"rework_rolls"`
	KIVRolls       int     `json:"kiv_rolls"`
	AcceptedWeight float64 `json:"accepted_weight"`
	RejectedWeight float64 `json:"rejected_weight"`
	ReworkWeight   float64 `json:"rework_weight"`
	KIVWeight      float64 `json:"kiv_weight"`
	TotalWeight    float64 `json:"total_weight"`
	TotalRolls     int     `json:"total_rolls"`
}

// RollEntry is one grid row in document form, the wire shape used by the save
// endpoint and the exporters. Field order follows the 33-column grid schema.
type RollEntry struct {
	Hour           string `json:"hour"`
	Minute         string `json:"minute"`
	LotNo          string `json:"lot_no"`
	RollPosition   string `json:"roll_position"`
	Arm            string `json:"arm"`
	RollWeight     string `json:"roll_weight"`
	RollWidthMM    string `json:"roll_width_mm"`
	FilmWeightGSM  string `json:"film_weight_gsm"`
	Thickness      string `json:"thickness"`
	RollDia        string `json:"roll_dia"`
	PaperCoreDiaID string `json:"paper_core_dia_id"`
	PaperCoreDiaOD string `json:"paper_core_dia_od"`

	LinesStrips  string `json:"lines_strips"`
	Glossy       string `json:"glossy"`
	FilmColor    string `json:"film_color"`
	PinHole      string `json:"pin_hole"`
	PatchMark    string `json:"patch_mark"`
	Odour        string `json:"odour"`
	CTAppearance string `json:"ct_appearance"`

	PrintColor     string `json:"print_color"`
	MisPrint       string `json:"mis_print"`
	DirtyPrint     string `json:"dirty_print"`
	TapeTest       string `json:"tape_test"`
	Centralization string `json:"centralization"`

	Wrinkles         string `json:"wrinkles"`
	PRS              string `json:"prs"`
	RollCurve        string `json:"roll_curve"`
	CoreMisalignment string `json:"core_misalignment"`
	Others           string `json:"others"`

	AcceptReject string `json:"accept_reject"`
	DefectName   string `json:"defect_name"`
	Remarks      string `json:"remarks"`
	InspectedBy  string `json:"inspected_by"`
}

// LotDocument is the full-document overwrite payload for one lot save.
type LotDocument struct {
	Rolls       []RollEntry `json:"rolls"`
	InspectedBy string      `json:"inspected_by"`
	Summary     LotSummary  `json:"summary"`
}
