package inspection

import (
	"strings"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// StatusEngine applies the row-level disposition rules: which cells stay
// editable, which values are rewritten or cleared when the disposition
// changes, and the X/O auto-disposition path.
//
// The KIV lock behavior is configurable. The source system disagreed with
// itself: one path locked indicator cells for KIV like Reject/Rework, the
// other left them editable. KIVLocksRow picks the behavior explicitly
// instead of silently inheriting either bug.
type StatusEngine struct {
	KIVLocksRow bool
}

// alwaysEditable are the cells a disposition never locks. Glossy, CT
// appearance, film weight and the paper core diameters stay open under every
// disposition: they are measured after the accept/reject call is made.
var alwaysEditable = map[string]bool{
	FieldAcceptReject:   true,
	FieldInspectedBy:    true,
	FieldGlossy:         true,
	FieldCTAppearance:   true,
	FieldFilmWeightGSM:  true,
	FieldPaperCoreDiaID: true,
	FieldPaperCoreDiaOD: true,
}

// EditableFields returns the set of grid fields that remain editable for a
// roll with the given disposition.
func (e StatusEngine) EditableFields(disposition string) map[string]bool {
	fields := make(map[string]bool, len(FieldOrder))
	switch disposition {
	case DispositionAccept:
		for f := range alwaysEditable {
			fields[f] = true
		}
	case DispositionReject, DispositionRework:
		for f := range alwaysEditable {
			fields[f] = true
		}
		fields[FieldDefectName] = true
		fields[FieldRemarks] = true
	case DispositionKIV:
		if e.KIVLocksRow {
			for f := range alwaysEditable {
				fields[f] = true
			}
			fields[FieldDefectName] = true
			fields[FieldRemarks] = true
			break
		}
		fallthrough
	default:
		for _, f := range FieldOrder {
			fields[f] = true
		}
	}
	return fields
}

// CanEdit reports whether field is editable on a roll with the given
// disposition.
func (e StatusEngine) CanEdit(disposition, field string) bool {
	return e.EditableFields(disposition)[field]
}

// ApplyDisposition mutates roll for a dropdown change from its current
// disposition to next:
//   - Accept rewrites every X indicator to O and clears defect name and
//     remarks.
//   - Leaving Reject/Rework clears all X indicator values.
//   - Clearing the disposition wipes every X and O indicator value and the
//     defect name.
//
// Values in cells that merely become locked are preserved.
func (e StatusEngine) ApplyDisposition(roll *models.RollEntry, next string) {
	prev := roll.AcceptReject
	roll.AcceptReject = next

	switch next {
	case DispositionAccept:
		forEachIndicator(roll, func(v string) string {
			if v == "X" {
				return "O"
			}
			return v
		})
		roll.DefectName = ""
		roll.Remarks = ""
	case DispositionNone:
		forEachIndicator(roll, func(v string) string {
			if v == "X" || v == "O" {
				return ""
			}
			return v
		})
		roll.DefectName = ""
	default:
		if prev == DispositionReject || prev == DispositionRework {
			forEachIndicator(roll, func(v string) string {
				if v == "X" {
					return ""
				}
				return v
			})
		}
	}
}

// ApplyIndicatorChange is the X/O auto-disposition path, run after an
// indicator cell changes:
//   - any X present forces Reject and auto-fills the defect name from the
//     field that carries the X;
//   - all 16 indicators filled with O forces Accept;
//   - no indicator filled clears the disposition.
//
// activeDefects is the active defect catalog used to resolve search-term
// fields (e.g. a wrinkles X picks the first active defect containing
// "wrinkle").
func (e StatusEngine) ApplyIndicatorChange(roll *models.RollEntry, activeDefects []string) {
	var xField string
	filled := 0
	allO := true
	forEachIndicator(roll, func(v string) string {
		if v != "" {
			filled++
		}
		switch v {
		case "X":
			allO = false
		case "O":
		default:
			allO = false
		}
		return v
	})
	xField = firstXField(roll)

	switch {
	case xField != "":
		roll.AcceptReject = DispositionReject
		if name := resolveDefectName(xField, activeDefects); name != "" {
			roll.DefectName = name
		}
	case filled == len(IndicatorFields) && allO:
		roll.AcceptReject = DispositionAccept
		roll.DefectName = ""
		roll.Remarks = ""
	case filled == 0:
		roll.AcceptReject = DispositionNone
	}
}

func firstXField(roll *models.RollEntry) string {
	for _, f := range IndicatorFields {
		if *indicatorCell(roll, f) == "X" {
			return f
		}
	}
	return ""
}

func resolveDefectName(field string, activeDefects []string) string {
	if name, ok := indicatorDefects[field]; ok {
		return name
	}
	term := indicatorSearchTerms[field]
	if term == "" {
		return ""
	}
	for _, d := range activeDefects {
		if strings.Contains(strings.ToLower(d), term) {
			return d
		}
	}
	return ""
}

// FillO sets every empty indicator cell to O; ClearO empties every cell
// holding exactly "O". Both are the table-level bulk actions.
func FillO(roll *models.RollEntry) {
	forEachIndicator(roll, func(v string) string {
		if v == "" {
			return "O"
		}
		return v
	})
}

func ClearO(roll *models.RollEntry) {
	forEachIndicator(roll, func(v string) string {
		if v == "O" {
			return ""
		}
		return v
	})
}

// PrefillNonPrinted writes "NA" into the CT and printing-quality cells of a
// roll on a non-printed form.
func PrefillNonPrinted(roll *models.RollEntry) {
	for _, f := range NonPrintedNAFields {
		cell := indicatorCell(roll, f)
		if *cell == "" {
			*cell = "NA"
		}
	}
}

func indicatorCell(roll *models.RollEntry, field string) *string {
	switch field {
	case FieldLinesStrips:
		return &roll.LinesStrips
	case FieldGlossy:
		return &roll.Glossy
	case FieldFilmColor:
		return &roll.FilmColor
	case FieldPinHole:
		return &roll.PinHole
	case FieldPatchMark:
		return &roll.PatchMark
	case FieldOdour:
		return &roll.Odour
	case FieldCTAppearance:
		return &roll.CTAppearance
	case FieldPrintColor:
		return &roll.PrintColor
	case FieldMisPrint:
		return &roll.MisPrint
	case FieldDirtyPrint:
		return &roll.DirtyPrint
	case FieldTapeTest:
		return &roll.TapeTest
	case FieldCentralization:
		return &roll.Centralization
	case FieldWrinkles:
		return &roll.Wrinkles
	case FieldPRS:
		return &roll.PRS
	case FieldRollCurve:
		return &roll.RollCurve
	case FieldCoreMisalignment:
		return &roll.CoreMisalignment
	}
	return new(string)
}

func forEachIndicator(roll *models.RollEntry, fn func(string) string) {
	for _, f := range IndicatorFields {
		cell := indicatorCell(roll, f)
		*cell = fn(*cell)
	}
}
