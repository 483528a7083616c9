package inspection

import (
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsMinMaxAvg(t *testing.T) {
	lots := [][]models.RollEntry{
		{
			{AcceptReject: DispositionAccept, RollWeight: "10", RollWidthMM: "850"},
			{AcceptReject: DispositionReject, RollWeight: "14", RollWidthMM: "848"},
		},
		{
			{AcceptReject: DispositionAccept, RollWeight: "12", RollWidthMM: "852"},
			{RollWeight: "99"}, // no disposition: excluded
		},
	}

	stats := Statistics(lots)
	require.Len(t, stats, 5)

	byField := make(map[string]ParameterStats)
	for _, st := range stats {
		byField[st.Field] = st
	}

	weight := byField[FieldRollWeight]
	assert.Equal(t, 3, weight.Count)
	assert.Equal(t, 10.0, weight.Min)
	assert.Equal(t, 14.0, weight.Max)
	assert.Equal(t, 12.0, weight.Avg)

	width := byField[FieldRollWidthMM]
	assert.Equal(t, 848.0, width.Min)
	assert.Equal(t, 852.0, width.Max)
}

func TestStatisticsSkipsUnparseable(t *testing.T) {
	lots := [][]models.RollEntry{
		{{AcceptReject: DispositionAccept, RollWeight: "abc"}},
	}

	stats := Statistics(lots)
	for _, st := range stats {
		assert.Zero(t, st.Count, "field %s", st.Field)
	}
}
