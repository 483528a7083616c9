package inspection

// Disposition values for the accept/reject dropdown.
const (
	DispositionNone   = ""
	DispositionAccept = "Accept"
	DispositionReject = "Reject"
	DispositionKIV    = "KIV"
	DispositionRework = "Rework"
)

// DropdownOptions is the fixed option list of the disposition selector.
var DropdownOptions = []string{
	DispositionNone,
	DispositionAccept,
	DispositionReject,
	DispositionKIV,
	DispositionRework,
}

// Grid field names. The 33-column order is fixed; exporters and the document
// serializer both key off this table.
const (
	FieldHour           = "hour"
	FieldMinute         = "minute"
	FieldLotNo          = "lot_no"
	FieldRollPosition   = "roll_position"
	FieldArm            = "arm"
	FieldRollWeight     = "roll_weight"
	FieldRollWidthMM    = "roll_width_mm"
	FieldFilmWeightGSM  = "film_weight_gsm"
	FieldThickness      = "thickness"
	FieldRollDia        = "roll_dia"
	FieldPaperCoreDiaID = "paper_core_dia_id"
	FieldPaperCoreDiaOD = "paper_core_dia_od"

	FieldLinesStrips  = "lines_strips"
	FieldGlossy       = "glossy"
	FieldFilmColor    = "film_color"
	FieldPinHole      = "pin_hole"
	FieldPatchMark    = "patch_mark"
	FieldOdour        = "odour"
	FieldCTAppearance = "ct_appearance"

	FieldPrintColor     = "print_color"
	FieldMisPrint       = "mis_print"
	FieldDirtyPrint     = "dirty_print"
	FieldTapeTest       = "tape_test"
	FieldCentralization = "centralization"

	FieldWrinkles         = "wrinkles"
	FieldPRS              = "prs"
	FieldRollCurve        = "roll_curve"
	FieldCoreMisalignment = "core_misalignment"
	FieldOthers           = "others"

	FieldAcceptReject = "accept_reject"
	FieldDefectName   = "defect_name"
	FieldRemarks      = "remarks"
	FieldInspectedBy  = "inspected_by"
)

// FieldOrder maps grid column index (0..32) to field name.
var FieldOrder = [33]string{
	FieldHour, FieldMinute, FieldLotNo, FieldRollPosition, FieldArm,
	FieldRollWeight, FieldRollWidthMM, FieldFilmWeightGSM, FieldThickness,
	FieldRollDia, FieldPaperCoreDiaID, FieldPaperCoreDiaOD,
	FieldLinesStrips, FieldGlossy, FieldFilmColor, FieldPinHole,
	FieldPatchMark, FieldOdour, FieldCTAppearance,
	FieldPrintColor, FieldMisPrint, FieldDirtyPrint, FieldTapeTest,
	FieldCentralization,
	FieldWrinkles, FieldPRS, FieldRollCurve, FieldCoreMisalignment,
	FieldOthers,
	FieldAcceptReject, FieldDefectName, FieldRemarks, FieldInspectedBy,
}

// IndicatorFields are the 16 pass/fail columns constrained to {"", "O", "X"}.
var IndicatorFields = []string{
	FieldLinesStrips, FieldGlossy, FieldFilmColor, FieldPinHole,
	FieldPatchMark, FieldOdour, FieldCTAppearance,
	FieldPrintColor, FieldMisPrint, FieldDirtyPrint, FieldTapeTest,
	FieldCentralization,
	FieldWrinkles, FieldPRS, FieldRollCurve, FieldCoreMisalignment,
}

var indicatorSet = func() map[string]bool {
	m := make(map[string]bool, len(IndicatorFields))
	for _, f := range IndicatorFields {
		m[f] = true
	}
	return m
}()

// IsIndicatorField reports whether name is one of the O/X indicator columns.
func IsIndicatorField(name string) bool {
	return indicatorSet[name]
}

// NonPrintedNAFields are prefilled with "NA" when a form is marked
// non-printed: the CT and printing-quality checks do not apply.
var NonPrintedNAFields = []string{
	FieldCTAppearance, FieldPrintColor, FieldMisPrint,
	FieldDirtyPrint, FieldTapeTest, FieldCentralization,
}

// indicatorDefects maps an indicator field to the defect name auto-filled
// when that field is marked X.
var indicatorDefects = map[string]string{
	FieldMisPrint:         "Mis Print",
	FieldDirtyPrint:       "Dirty Print",
	FieldPinHole:          "Pin Hole",
	FieldCoreMisalignment: "Core Misalignment",
	FieldPRS:              "PRS",
}

// indicatorSearchTerms maps the remaining indicator fields to a catalog
// search term used to resolve the defect name against the active defect list.
var indicatorSearchTerms = map[string]string{
	FieldWrinkles:       "wrinkle",
	FieldLinesStrips:    "line",
	FieldGlossy:         "glossy",
	FieldFilmColor:      "color",
	FieldPatchMark:      "patch",
	FieldOdour:          "odour",
	FieldCTAppearance:   "ct",
	FieldPrintColor:     "print",
	FieldTapeTest:       "tape",
	FieldCentralization: "centralization",
	FieldRollCurve:      "curve",
}
