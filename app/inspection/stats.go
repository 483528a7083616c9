package inspection

import (
	"strconv"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// ParameterStats holds min/max/avg/count for one measured parameter over the
// rolls that carry a disposition.
type ParameterStats struct {
	Field string  `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// statParameters are the five measured columns shown in the statistics table.
var statParameters = []string{
	FieldRollWeight, FieldRollWidthMM, FieldFilmWeightGSM,
	FieldRollDia, FieldThickness,
}

// Statistics computes per-parameter min/max/avg over every roll that has a
// selected disposition, across all lots of a shift.
func Statistics(lots [][]models.RollEntry) []ParameterStats {
	out := make([]ParameterStats, 0, len(statParameters))
	for _, field := range statParameters {
		st := ParameterStats{Field: field}
		sum := 0.0
		for _, rolls := range lots {
			for _, roll := range rolls {
				if roll.AcceptReject == DispositionNone {
					continue
				}
				v, err := strconv.ParseFloat(measurement(&roll, field), 64)
				if err != nil {
					continue
				}
				if st.Count == 0 || v < st.Min {
					st.Min = v
				}
				if st.Count == 0 || v > st.Max {
					st.Max = v
				}
				sum += v
				st.Count++
			}
		}
		if st.Count > 0 {
			st.Avg = sum / float64(st.Count)
		}
		out = append(out, st)
	}
	return out
}

func measurement(roll *models.RollEntry, field string) string {
	switch field {
	case FieldRollWeight:
		return roll.RollWeight
	case FieldRollWidthMM:
		return roll.RollWidthMM
	case FieldFilmWeightGSM:
		return roll.FilmWeightGSM
	case FieldRollDia:
		return roll.RollDia
	case FieldThickness:
		return roll.Thickness
	}
	return ""
}
