package inspection

import "github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"

// FieldValue reads one grid cell of a roll by field name.
func FieldValue(roll *models.RollEntry, field string) string {
	return *cellRef(roll, field)
}

// SetField writes one grid cell of a roll by field name. Unknown field names
// are ignored.
func SetField(roll *models.RollEntry, field, value string) {
	*cellRef(roll, field) = value
}

func cellRef(roll *models.RollEntry, field string) *string {
	if IsIndicatorField(field) {
		return indicatorCell(roll, field)
	}
	switch field {
	case FieldHour:
		return &roll.Hour
	case FieldMinute:
		return &roll.Minute
	case FieldLotNo:
		return &roll.LotNo
	case FieldRollPosition:
		return &roll.RollPosition
	case FieldArm:
		return &roll.Arm
	case FieldRollWeight:
		return &roll.RollWeight
	case FieldRollWidthMM:
		return &roll.RollWidthMM
	case FieldFilmWeightGSM:
		return &roll.FilmWeightGSM
	case FieldThickness:
		return &roll.Thickness
	case FieldRollDia:
		return &roll.RollDia
	case FieldPaperCoreDiaID:
		return &roll.PaperCoreDiaID
	case FieldPaperCoreDiaOD:
		return &roll.PaperCoreDiaOD
	case FieldOthers:
		return &roll.Others
	case FieldAcceptReject:
		return &roll.AcceptReject
	case FieldDefectName:
		return &roll.DefectName
	case FieldRemarks:
		return &roll.Remarks
	case FieldInspectedBy:
		return &roll.InspectedBy
	}
	return new(string)
}
