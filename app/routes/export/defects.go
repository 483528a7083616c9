package export

import (
	"fmt"
	"log"
	"sort"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ProductionDefectsExportAPI streams the defect-frequency workbook for one
// production date, optionally restricted to a machine.
func ProductionDefectsExportAPI(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date is required"})
	}
	mcNo := c.Query("mc_no")

	lots, err := database.GetLotsByDate(config.GetDB(), date, mcNo)
	if err != nil {
		log.Printf("Error loading lots for defects export %s: %v", date, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch data"})
	}
	if len(lots) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No inspection data found"})
	}

	all := make([][]models.RollEntry, 0, len(lots))
	for _, lot := range lots {
		all = append(all, inspection.RollsFromLot(lot))
	}

	f, err := BuildDefectsWorkbook(date, mcNo, inspection.DefectCounts(all))
	if err != nil {
		log.Printf("Error building defects workbook for %s: %v", date, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	defer f.Close()

	filename := fmt.Sprintf("Production-Defects-%s.xlsx", date)
	if mcNo != "" {
		filename = fmt.Sprintf("Production-Defects-%s-MC%s.xlsx", date, mcNo)
	}
	return sendWorkbook(c, f, filename)
}

// BuildDefectsWorkbook renders a defect count table, highest count first.
func BuildDefectsWorkbook(date, mcNo string, counts map[string]int) (*excelize.File, error) {
	type defectCount struct {
		Name  string
		Count int
	}
	rows := make([]defectCount, 0, len(counts))
	total := 0
	for name, n := range counts {
		rows = append(rows, defectCount{Name: name, Count: n})
		total += n
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})

	f := excelize.NewFile()
	const sheet = "Defects"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	header := map[string]interface{}{
		"A1": "PRODUCTION DEFECTS SUMMARY",
		"A2": "Date:",
		"B2": formatDDMMYYYY(date),
		"A4": "Defect",
		"B4": "Count",
	}
	if mcNo != "" {
		header["C2"] = "M/C:"
		header["D2"] = mcNo
	}
	for cell, v := range header {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			f.Close()
			return nil, err
		}
	}

	row := 5
	for _, dc := range rows {
		if err := setCell(f, sheet, "A", row, dc.Name); err != nil {
			f.Close()
			return nil, err
		}
		if err := setCell(f, sheet, "B", row, dc.Count); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if err := setCell(f, sheet, "A", row, "Total"); err != nil {
		f.Close()
		return nil, err
	}
	if err := setCell(f, sheet, "B", row, total); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
