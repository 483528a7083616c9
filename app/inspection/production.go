package inspection

import (
	"regexp"
	"strconv"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/shopspring/decimal"
)

// ProductionCount aggregates rolls and weight produced under one production
// number.
type ProductionCount struct {
	ProductionNo string  `json:"production_no"`
	Rolls        int     `json:"rolls"`
	WeightKG     float64 `json:"weight_kg"`
}

// Remarks patterns that announce a production-number change. The bare
// pattern matches codes like "AB12CD345".
var productionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)PRD:\s*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Production:\s*([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Prod:\s*([A-Z0-9]+)`),
	regexp.MustCompile(`([A-Z]{2,3}\d{2}[A-Z]{2}\d{3})`),
}

// ProductionSummary scans remarks across a shift's lots in roll order. A
// production number found in a remark stays in force for every following
// roll until the next one appears; per number it counts rolls with a
// positive weight and sums their kg.
func ProductionSummary(lots [][]models.RollEntry) []ProductionCount {
	var order []string
	totals := make(map[string]*ProductionCount)
	sums := make(map[string]decimal.Decimal)
	current := ""

	for _, rolls := range lots {
		for _, roll := range rolls {
			if no := extractProductionNo(roll.Remarks); no != "" {
				current = no
			}
			if current == "" {
				continue
			}
			weight, err := strconv.ParseFloat(roll.RollWeight, 64)
			if err != nil || weight <= 0 {
				continue
			}
			pc, ok := totals[current]
			if !ok {
				pc = &ProductionCount{ProductionNo: current}
				totals[current] = pc
				sums[current] = decimal.Zero
				order = append(order, current)
			}
			pc.Rolls++
			sums[current] = sums[current].Add(decimal.NewFromFloat(weight))
		}
	}

	out := make([]ProductionCount, 0, len(order))
	for _, no := range order {
		pc := totals[no]
		pc.WeightKG = round2(sums[no])
		out = append(out, *pc)
	}
	return out
}

func extractProductionNo(remarks string) string {
	if remarks == "" {
		return ""
	}
	for _, re := range productionPatterns {
		if m := re.FindStringSubmatch(remarks); m != nil {
			return m[1]
		}
	}
	return ""
}
