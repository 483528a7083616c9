package inspection

import (
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeCountsAndWeights(t *testing.T) {
	rolls := []models.RollEntry{
		{AcceptReject: DispositionAccept, RollWeight: "10.50"},
		{AcceptReject: DispositionAccept, RollWeight: "12.25"},
		{AcceptReject: DispositionReject, RollWeight: "9.75"},
		{AcceptReject: DispositionRework, RollWeight: "8.00"},
		{AcceptReject: DispositionKIV, RollWeight: "7.10"},
		{RollWeight: "5.00"}, // no disposition: weighed nowhere
	}

	s := Summarize(rolls)

	assert.Equal(t, 2, s.AcceptedRolls)
	assert.Equal(t, 1, s.RejectedRolls)
	assert.Equal(t, 1, s.ReworkRolls)
	assert.Equal(t, 1, s.KIVRolls)
	assert.Equal(t, s.AcceptedRolls+s.RejectedRolls+s.ReworkRolls+s.KIVRolls, s.TotalRolls)

	assert.Equal(t, 22.75, s.AcceptedWeight)
	assert.Equal(t, 9.75, s.RejectedWeight)
	assert.Equal(t, 8.0, s.ReworkWeight)
	assert.Equal(t, 7.1, s.KIVWeight)
	assert.Equal(t, 47.6, s.TotalWeight)
}

func TestSummarizeDecimalAccumulation(t *testing.T) {
	// Binary float accumulation would drift here; the decimal path must not.
	rolls := make([]models.RollEntry, 10)
	for i := range rolls {
		rolls[i] = models.RollEntry{AcceptReject: DispositionAccept, RollWeight: "0.1"}
	}

	s := Summarize(rolls)

	assert.Equal(t, 1.0, s.AcceptedWeight)
	assert.Equal(t, 1.0, s.TotalWeight)
}

func TestSummarizeIgnoresUnparseableWeights(t *testing.T) {
	rolls := []models.RollEntry{
		{AcceptReject: DispositionAccept, RollWeight: ""},
		{AcceptReject: DispositionAccept, RollWeight: "n/a"},
	}

	s := Summarize(rolls)

	assert.Equal(t, 2, s.AcceptedRolls)
	assert.Equal(t, 0.0, s.AcceptedWeight)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalRolls)
	assert.Zero(t, s.TotalWeight)
}

func TestDefectCounts(t *testing.T) {
	lots := [][]models.RollEntry{
		{{DefectName: "Pin Hole"}, {DefectName: "Pin Hole"}, {}},
		{{DefectName: "Wrinkle Mark"}},
	}

	counts := DefectCounts(lots)

	assert.Equal(t, 2, counts["Pin Hole"])
	assert.Equal(t, 1, counts["Wrinkle Mark"])
	assert.Len(t, counts, 2)
}

func TestIPQCDefectCounts(t *testing.T) {
	lots := [][]models.RollEntry{
		{{InspectedBy: "Asha", DefectName: "Pin Hole"}},
		{{InspectedBy: "Ravi", DefectName: "Pin Hole"}},
	}
	qc := map[string]bool{"Asha": true}

	counts := IPQCDefectCounts(lots, qc)

	assert.Equal(t, 1, counts["Pin Hole"], "only QC-inspected lots count")
}
