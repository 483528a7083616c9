package inspection

import (
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/shopspring/decimal"
)

// Summarize recomputes a lot's summary from its rolls: roll counts and
// summed weights per disposition, rounded to 2 decimal places. TotalRolls
// counts rolls with a non-empty disposition, so the invariant
// total = accepted + rejected + rework + kiv always holds.
func Summarize(rolls []models.RollEntry) models.LotSummary {
	var s models.LotSummary
	accepted := decimal.Zero
	rejected := decimal.Zero
	rework := decimal.Zero
	kiv := decimal.Zero

	for _, roll := range rolls {
		weight, err := decimal.NewFromString(roll.RollWeight)
		if err != nil {
			weight = decimal.Zero
		}
		switch roll.AcceptReject {
		case DispositionAccept:
			s.AcceptedRolls++
			accepted = accepted.Add(weight)
		case DispositionReject:
			s.RejectedRolls++
			rejected = rejected.Add(weight)
		case DispositionRework:
			s.ReworkRolls++
			rework = rework.Add(weight)
		case DispositionKIV:
			s.KIVRolls++
			kiv = kiv.Add(weight)
		}
	}

	s.TotalRolls = s.AcceptedRolls + s.RejectedRolls + s.ReworkRolls + s.KIVRolls
	s.AcceptedWeight = round2(accepted)
	s.RejectedWeight = round2(rejected)
	s.ReworkWeight = round2(rework)
	s.KIVWeight = round2(kiv)
	s.TotalWeight = round2(accepted.Add(rejected).Add(rework).Add(kiv))
	return s
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// DefectCounts builds the defect-frequency table across a set of lots.
func DefectCounts(lots [][]models.RollEntry) map[string]int {
	counts := make(map[string]int)
	for _, rolls := range lots {
		for _, roll := range rolls {
			if roll.DefectName != "" {
				counts[roll.DefectName]++
			}
		}
	}
	return counts
}

// IPQCDefectCounts restricts the defect-frequency table to lots whose
// first-row inspector belongs to the QC roster.
func IPQCDefectCounts(lots [][]models.RollEntry, qcInspectors map[string]bool) map[string]int {
	counts := make(map[string]int)
	for _, rolls := range lots {
		if len(rolls) == 0 || !qcInspectors[rolls[0].InspectedBy] {
			continue
		}
		for _, roll := range rolls {
			if roll.DefectName != "" {
				counts[roll.DefectName]++
			}
		}
	}
	return counts
}
