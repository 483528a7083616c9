package inspection

import (
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionSummaryCarriesForward(t *testing.T) {
	lots := [][]models.RollEntry{
		{
			{Remarks: "PRD: AB12CD345", RollWeight: "10"},
			{RollWeight: "12"},
			{RollWeight: "0"}, // zero weight: not counted
			{Remarks: "Production: XY34ZW678", RollWeight: "8"},
		},
		{
			{RollWeight: "9"}, // previous number still in force
		},
	}

	out := ProductionSummary(lots)
	require.Len(t, out, 2)

	assert.Equal(t, "AB12CD345", out[0].ProductionNo)
	assert.Equal(t, 2, out[0].Rolls)
	assert.Equal(t, 22.0, out[0].WeightKG)

	assert.Equal(t, "XY34ZW678", out[1].ProductionNo)
	assert.Equal(t, 2, out[1].Rolls)
	assert.Equal(t, 17.0, out[1].WeightKG)
}

func TestProductionSummaryNoNumber(t *testing.T) {
	lots := [][]models.RollEntry{
		{{RollWeight: "10"}, {Remarks: "torn edge", RollWeight: "12"}},
	}

	assert.Empty(t, ProductionSummary(lots))
}

func TestProductionSummaryAfterRemarkNormalization(t *testing.T) {
	// Remarks reach the summary through the cell transform; a bare-format
	// code typed into a remark must still be detected afterwards.
	remark := NormalizeCell(FieldRemarks, "UBS25PR026")
	lots := [][]models.RollEntry{
		{{Remarks: remark, RollWeight: "10"}, {RollWeight: "12"}},
	}

	out := ProductionSummary(lots)
	require.Len(t, out, 1)
	assert.Equal(t, "UBS25PR026", out[0].ProductionNo)
	assert.Equal(t, 2, out[0].Rolls)
	assert.Equal(t, 22.0, out[0].WeightKG)
}

func TestExtractProductionNoPatterns(t *testing.T) {
	tests := []struct {
		remarks string
		want    string
	}{
		{"PRD: AB12CD345", "AB12CD345"},
		{"prod: XY34ZW678", "XY34ZW678"},
		{"changed to AB12CD345 here", "AB12CD345"},
		{"no code here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractProductionNo(tt.remarks), "remarks %q", tt.remarks)
	}
}
