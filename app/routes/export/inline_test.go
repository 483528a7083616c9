package export

import (
	"fmt"
	"testing"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLot(lotNo, disposition, weight string, rolls int) *models.InspectionLot {
	customer := "Swanson Customer"
	prodCode := "SPI123"
	lot := &models.InspectionLot{
		FormID:           "form-" + lotNo,
		TraceabilityCode: "25082811",
		LotLetter:        "A",
		LotNo:            &lotNo,
		Customer:         &customer,
		ProdCode:         &prodCode,
		McNo:             "1",
		Shift:            "1",
	}
	entries := make([]models.RollEntry, rolls)
	for i := range entries {
		entries[i] = models.RollEntry{AcceptReject: disposition, RollWeight: weight}
	}
	entries[0].InspectedBy = "Asha"
	inspection.ApplyRollsToLot(lot, entries)
	return lot
}

func TestBuildInlineWorkbookPagination(t *testing.T) {
	// 65 + 10 rolls with a separator row overflow the 70-row page: four of
	// the second lot's rolls land on Page1, six flow to Page2.
	lots := []*models.InspectionLot{
		buildLot("01", inspection.DispositionAccept, "10", 65),
		buildLot("02", inspection.DispositionReject, "5", 10),
	}

	f, err := BuildInlineWorkbook(lots, "2256")
	require.NoError(t, err)
	defer f.Close()

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	// First lot fills rows 13..77, blank separator at 78, second lot at 79.
	assert.Equal(t, "10", cell("Page1", "F13"))
	assert.Equal(t, "O", cell("Page1", "AD13"))
	assert.Equal(t, "Asha", cell("Page1", "AF13"))
	assert.Equal(t, "10", cell("Page1", "F77"))
	assert.Equal(t, "", cell("Page1", "F78"), "blank row between lots")
	assert.Equal(t, "02", cell("Page1", "C79"))
	assert.Equal(t, "X", cell("Page1", "AD79"))
	assert.Equal(t, "5", cell("Page1", "F82"))

	// Overflow continues at the top of Page2.
	assert.Equal(t, "5", cell("Page2", "F13"))
	assert.Equal(t, "X", cell("Page2", "AD13"))
	assert.Equal(t, "", cell("Page2", "F19"), "only six rolls flow over")

	// Each page's subtotal block covers only its own rows.
	assert.Equal(t, "65", cell("Page1", "L84"))
	assert.Equal(t, "650", cell("Page1", "N84"))
	assert.Equal(t, "4", cell("Page1", "L85"))
	assert.Equal(t, "20", cell("Page1", "N85"))
	assert.Equal(t, "69", cell("Page1", "L88"))
	assert.Equal(t, "670", cell("Page1", "N88"))

	assert.Equal(t, "6", cell("Page2", "L85"))
	assert.Equal(t, "30", cell("Page2", "N85"))
	assert.Equal(t, "6", cell("Page2", "L88"))
	assert.Equal(t, "30", cell("Page2", "N88"))

	// Header repeats on every used page.
	assert.Equal(t, "Swanson Customer", cell("Page1", "D5"))
	assert.Equal(t, "Swanson Customer", cell("Page2", "D5"))
}

func TestBuildInlineWorkbookSortsLotsNumerically(t *testing.T) {
	lots := []*models.InspectionLot{
		buildLot("10", inspection.DispositionAccept, "1", 1),
		buildLot("02", inspection.DispositionAccept, "2", 1),
	}

	f, err := BuildInlineWorkbook(lots, "")
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Page1", "C13")
	require.NoError(t, err)
	assert.Equal(t, "02", v, "lot 02 sorts before lot 10")
}

func TestBuildInlineWorkbookSingleLotFitsOnePage(t *testing.T) {
	lots := []*models.InspectionLot{
		buildLot("01", inspection.DispositionAccept, "10", 5),
	}

	f, err := BuildInlineWorkbook(lots, "")
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Page2")
	v, err := f.GetCellValue("Page1", "L88")
	require.NoError(t, err)
	assert.Equal(t, "5", v)
}

func TestShiftLetter(t *testing.T) {
	assert.Equal(t, "A", shiftLetter("1"))
	assert.Equal(t, "B", shiftLetter("2"))
	assert.Equal(t, "C", shiftLetter("3"))
	assert.Equal(t, "G", shiftLetter("G"))
}

func TestFormatDDMMYYYY(t *testing.T) {
	assert.Equal(t, "28/08/2025", formatDDMMYYYY("2025-08-28"))
	assert.Equal(t, "not-a-date", formatDDMMYYYY("not-a-date"))
}

func TestBuildDefectsWorkbookOrdering(t *testing.T) {
	f, err := BuildDefectsWorkbook("2025-08-28", "1", map[string]int{
		"Pin Hole":     2,
		"Wrinkle Mark": 5,
		"Patch Mark":   2,
	})
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Defects", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Wrinkle Mark", cell("A5"))
	assert.Equal(t, "Patch Mark", cell("A6"), "count ties break alphabetically")
	assert.Equal(t, "Pin Hole", cell("A7"))
	assert.Equal(t, "Total", cell("A8"))
	assert.Equal(t, "9", cell("B8"))
}

func TestBuildMJRWorkbook(t *testing.T) {
	customer := "Swanson Customer"
	judgement := "Rework"
	r := &models.MJRRecord{
		MJRNo:         "MJR-2025-014",
		Customer:      &customer,
		Judgement:     &judgement,
		QuantityRolls: 7,
		QuantityKG:    84.5,
	}

	f, err := BuildMJRWorkbook(r)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("MJR", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "MJR-2025-014", cell("B3"))
	assert.Equal(t, "Swanson Customer", cell("B5"))
	assert.Equal(t, "Rework", cell("B15"))
	assert.Equal(t, "7", cell("B12"))
	assert.Equal(t, fmt.Sprintf("%v", 84.5), cell("B13"))
}
