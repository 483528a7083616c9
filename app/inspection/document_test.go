package inspection

import (
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRolls() []models.RollEntry {
	return []models.RollEntry{
		{
			Hour: "08", Minute: "15",
			RollWeight: "12.34", RollWidthMM: "850", FilmWeightGSM: "9.5",
			Thickness: "23", RollDia: "310",
			PaperCoreDiaID: "76.2", PaperCoreDiaOD: "82",
			Glossy: "O", PinHole: "X",
			AcceptReject: DispositionReject, DefectName: "Pin Hole",
			Remarks: "edge", InspectedBy: "Asha",
		},
		{
			Hour: "08", Minute: "45",
			RollWeight: "11.90",
			Wrinkles:   "O",
			AcceptReject: DispositionAccept,
		},
	}
}

func TestApplyRollsToLotAndBack(t *testing.T) {
	lot := &models.InspectionLot{Arm: "L"}
	lotNo := "02"
	lot.LotNo = &lotNo

	ApplyRollsToLot(lot, sampleRolls())

	assert.Equal(t, 2, lot.TotalRolls)
	assert.Equal(t, "12.34", lot.RollWeights["1"])
	assert.Equal(t, "11.90", lot.RollWeights["2"])
	assert.Equal(t, "X", lot.FilmAppearance[FieldPinHole]["1"])
	assert.Equal(t, "O", lot.RollAppearance[FieldWrinkles]["2"])
	assert.Equal(t, "76.2", lot.PaperCoreData["id"]["1"])
	assert.Equal(t, "08", lot.TimeData["hour"]["2"])
	assert.Equal(t, "Asha", lot.InspectedBy, "first-roll inspector lifted to the lot")
	assert.Equal(t, 1, lot.Summary.AcceptedRolls)
	assert.Equal(t, 1, lot.Summary.RejectedRolls)

	back := RollsFromLot(lot)
	require.Len(t, back, 2)
	assert.Equal(t, "12.34", back[0].RollWeight)
	assert.Equal(t, "X", back[0].PinHole)
	assert.Equal(t, "Pin Hole", back[0].DefectName)
	assert.Equal(t, "Asha", back[0].InspectedBy)
	assert.Empty(t, back[1].InspectedBy, "inspector only on the first roll")
	assert.Equal(t, "02", back[0].LotNo)
	assert.Equal(t, "L", back[0].Arm)
	assert.Equal(t, "1", back[0].RollPosition)
	assert.Equal(t, "2", back[1].RollPosition)
}

func TestApplyRollsToLotZeroRows(t *testing.T) {
	lot := &models.InspectionLot{}
	ApplyRollsToLot(lot, sampleRolls())

	// A zero-row save must persist an empty document, not keep the old one.
	ApplyRollsToLot(lot, nil)

	assert.Zero(t, lot.TotalRolls)
	assert.Empty(t, lot.RollWeights)
	assert.Empty(t, lot.AcceptRejectStatus)
	assert.Empty(t, lot.FilmAppearance[FieldPinHole])
	assert.Zero(t, lot.Summary.TotalRolls)
	assert.Zero(t, lot.Summary.TotalWeight)
	assert.Empty(t, RollsFromLot(lot))
}

func TestRollsFromLotPadsToHighestPosition(t *testing.T) {
	lot := &models.InspectionLot{
		RollWeights: models.FieldMap{"3": "10.00"},
	}

	rolls := RollsFromLot(lot)
	require.Len(t, rolls, 3)
	assert.Empty(t, rolls[0].RollWeight)
	assert.Equal(t, "10.00", rolls[2].RollWeight)
}

func TestRollsFromLotHonorsTotalRolls(t *testing.T) {
	lot := &models.InspectionLot{TotalRolls: 4}

	rolls := RollsFromLot(lot)
	require.Len(t, rolls, 4)
	for i, roll := range rolls {
		assert.Equal(t, "", roll.RollWeight, "roll %d", i)
	}
}

func TestFieldValueSetFieldRoundTrip(t *testing.T) {
	var roll models.RollEntry
	for _, field := range FieldOrder {
		SetField(&roll, field, "v")
		assert.Equal(t, "v", FieldValue(&roll, field), "field %s", field)
	}
}
