package export

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// MJRExportAPI streams one material judgement report as xlsx.
func MJRExportAPI(c *fiber.Ctx) error {
	record, err := database.GetMJRRecord(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "MJR record not found"})
		}
		log.Printf("Error loading MJR record %s: %v", c.Params("id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch record"})
	}

	f, err := BuildMJRWorkbook(record)
	if err != nil {
		log.Printf("Error building MJR workbook %s: %v", record.MJRNo, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	defer f.Close()

	return sendWorkbook(c, f, fmt.Sprintf("MJR-%s.xlsx", record.MJRNo))
}

// BuildMJRWorkbook renders the single-record judgement report layout.
func BuildMJRWorkbook(r *models.MJRRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "MJR"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	str := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	cells := map[string]interface{}{
		"A1":  "MATERIAL JUDGEMENT REPORT",
		"A3":  "MJR No:",
		"B3":  r.MJRNo,
		"A4":  "Date:",
		"B4":  formatDDMMYYYY(str(r.ReportDate)),
		"A5":  "Customer:",
		"B5":  str(r.Customer),
		"A6":  "Prod Code:",
		"B6":  str(r.ProdCode),
		"A7":  "M/C:",
		"B7":  str(r.McNo),
		"C7":  "Shift:",
		"D7":  str(r.Shift),
		"A9":  "Defect:",
		"B9":  str(r.DefectName),
		"A10": "Details:",
		"B10": str(r.DefectDetails),
		"A12": "Quantity (rolls):",
		"B12": r.QuantityRolls,
		"A13": "Quantity (kg):",
		"B13": r.QuantityKG,
		"A15": "Judgement:",
		"B15": str(r.Judgement),
		"A17": "Raised By:",
		"B17": str(r.RaisedBy),
		"A18": "Approved By:",
		"B18": str(r.ApprovedBy),
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
