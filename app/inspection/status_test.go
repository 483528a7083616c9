package inspection

import (
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyDispositionAccept(t *testing.T) {
	roll := models.RollEntry{
		AcceptReject: DispositionReject,
		PinHole:      "X",
		Glossy:       "O",
		DefectName:   "Pin Hole",
		Remarks:      "edge damage",
	}

	StatusEngine{}.ApplyDisposition(&roll, DispositionAccept)

	assert.Equal(t, DispositionAccept, roll.AcceptReject)
	assert.Equal(t, "O", roll.PinHole, "X must be rewritten to O")
	assert.Equal(t, "O", roll.Glossy)
	assert.Empty(t, roll.DefectName)
	assert.Empty(t, roll.Remarks)
}

func TestApplyDispositionPreservesLockedValues(t *testing.T) {
	roll := models.RollEntry{
		RollWeight:  "12.34",
		RollWidthMM: "850",
		Glossy:      "O",
	}

	engine := StatusEngine{}
	engine.ApplyDisposition(&roll, DispositionAccept)
	assert.Equal(t, "12.34", roll.RollWeight, "locking must not clear values")
	assert.Equal(t, "850", roll.RollWidthMM)

	// Unlocking preserves them too.
	engine.ApplyDisposition(&roll, DispositionNone)
	assert.Equal(t, "12.34", roll.RollWeight)
	assert.Equal(t, "850", roll.RollWidthMM)
}

func TestApplyDispositionClearWipesIndicators(t *testing.T) {
	roll := models.RollEntry{
		AcceptReject: DispositionReject,
		Glossy:       "O",
		PinHole:      "O",
		Wrinkles:     "X",
		DefectName:   "Pin Hole",
	}

	StatusEngine{}.ApplyDisposition(&roll, DispositionNone)

	assert.Empty(t, roll.Glossy)
	assert.Empty(t, roll.PinHole)
	assert.Empty(t, roll.Wrinkles)
	assert.Empty(t, roll.DefectName, "stale defect cleared with the disposition")
}

func TestApplyDispositionLeavingRejectClearsX(t *testing.T) {
	roll := models.RollEntry{
		AcceptReject: DispositionReject,
		PinHole:      "X",
		Glossy:       "O",
	}

	StatusEngine{}.ApplyDisposition(&roll, DispositionKIV)

	assert.Empty(t, roll.PinHole, "X cleared when leaving Reject")
	assert.Equal(t, "O", roll.Glossy, "O values stay")
}

func TestEditableFields(t *testing.T) {
	engine := StatusEngine{}

	accept := engine.EditableFields(DispositionAccept)
	assert.True(t, accept[FieldAcceptReject])
	assert.True(t, accept[FieldInspectedBy])
	assert.False(t, accept[FieldRollWeight])
	assert.False(t, accept[FieldDefectName])

	reject := engine.EditableFields(DispositionReject)
	assert.True(t, reject[FieldDefectName])
	assert.True(t, reject[FieldRemarks])
	assert.False(t, reject[FieldRollWeight])

	// Glossy, CT, film weight and paper core stay open under every
	// disposition.
	lateFields := []string{
		FieldGlossy, FieldCTAppearance, FieldFilmWeightGSM,
		FieldPaperCoreDiaID, FieldPaperCoreDiaOD,
	}
	for _, f := range lateFields {
		assert.True(t, accept[f], "field %s editable under Accept", f)
		assert.True(t, reject[f], "field %s editable under Reject", f)
		assert.True(t, engine.CanEdit(DispositionRework, f), "field %s editable under Rework", f)
	}

	blank := engine.EditableFields(DispositionNone)
	for _, f := range FieldOrder {
		assert.True(t, blank[f], "field %s editable with no disposition", f)
	}
}

func TestEditableFieldsKIVFlag(t *testing.T) {
	open := StatusEngine{KIVLocksRow: false}.EditableFields(DispositionKIV)
	assert.True(t, open[FieldRollWeight])

	locked := StatusEngine{KIVLocksRow: true}.EditableFields(DispositionKIV)
	assert.False(t, locked[FieldRollWeight])
	assert.True(t, locked[FieldDefectName])
	assert.True(t, locked[FieldAcceptReject])
	assert.True(t, locked[FieldGlossy])
	assert.True(t, locked[FieldPaperCoreDiaOD])
}

func TestApplyIndicatorChangeXForcesReject(t *testing.T) {
	roll := models.RollEntry{MisPrint: "X"}

	StatusEngine{}.ApplyIndicatorChange(&roll, nil)

	assert.Equal(t, DispositionReject, roll.AcceptReject)
	assert.Equal(t, "Mis Print", roll.DefectName)
}

func TestApplyIndicatorChangeSearchTermDefect(t *testing.T) {
	roll := models.RollEntry{Wrinkles: "X"}

	StatusEngine{}.ApplyIndicatorChange(&roll, []string{"Patch Mark", "Wrinkle Mark"})

	assert.Equal(t, DispositionReject, roll.AcceptReject)
	assert.Equal(t, "Wrinkle Mark", roll.DefectName)
}

func TestApplyIndicatorChangeAllOForcesAccept(t *testing.T) {
	var roll models.RollEntry
	FillO(&roll)
	roll.DefectName = "stale"

	StatusEngine{}.ApplyIndicatorChange(&roll, nil)

	assert.Equal(t, DispositionAccept, roll.AcceptReject)
	assert.Empty(t, roll.DefectName)
}

func TestApplyIndicatorChangeEmptyClears(t *testing.T) {
	roll := models.RollEntry{AcceptReject: DispositionAccept}

	StatusEngine{}.ApplyIndicatorChange(&roll, nil)

	assert.Equal(t, DispositionNone, roll.AcceptReject)
}

func TestApplyIndicatorChangeNABlocksAccept(t *testing.T) {
	// Non-printed forms carry NA in the printing cells; a full row of O
	// elsewhere must not auto-accept.
	var roll models.RollEntry
	PrefillNonPrinted(&roll)
	FillO(&roll)

	StatusEngine{}.ApplyIndicatorChange(&roll, nil)

	assert.NotEqual(t, DispositionAccept, roll.AcceptReject)
}

func TestFillOAndClearO(t *testing.T) {
	roll := models.RollEntry{PinHole: "X"}
	FillO(&roll)
	assert.Equal(t, "X", roll.PinHole, "FillO must not overwrite X")
	assert.Equal(t, "O", roll.Glossy)

	ClearO(&roll)
	assert.Equal(t, "X", roll.PinHole)
	assert.Empty(t, roll.Glossy)
}

func TestPrefillNonPrinted(t *testing.T) {
	roll := models.RollEntry{TapeTest: "O"}
	PrefillNonPrinted(&roll)

	assert.Equal(t, "NA", roll.CTAppearance)
	assert.Equal(t, "NA", roll.PrintColor)
	assert.Equal(t, "O", roll.TapeTest, "existing values are kept")
	assert.Empty(t, roll.Glossy, "film appearance cells untouched")
}
