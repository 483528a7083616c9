package export

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// The inline inspection report mirrors the paper ILIF sheet: three pages,
// data rows 13-82, one blank row between lots, per-page subtotal block.
const (
	dataStartRow = 13
	dataEndRow   = 82
	maxPages     = 3
)

// Grid columns A..AC in roll field order. AD (O/X mark), AE (defect/remarks)
// and AF (inspector) are written separately.
var exportColumns = []struct {
	Col   string
	Field string
}{
	{"A", inspection.FieldHour},
	{"B", inspection.FieldMinute},
	{"C", inspection.FieldLotNo},
	{"D", inspection.FieldRollPosition},
	{"E", inspection.FieldArm},
	{"F", inspection.FieldRollWeight},
	{"G", inspection.FieldRollWidthMM},
	{"H", inspection.FieldFilmWeightGSM},
	{"I", inspection.FieldThickness},
	{"J", inspection.FieldRollDia},
	{"K", inspection.FieldPaperCoreDiaID},
	{"L", inspection.FieldPaperCoreDiaOD},
	{"M", inspection.FieldLinesStrips},
	{"N", inspection.FieldGlossy},
	{"O", inspection.FieldFilmColor},
	{"P", inspection.FieldPinHole},
	{"Q", inspection.FieldPatchMark},
	{"R", inspection.FieldOdour},
	{"S", inspection.FieldCTAppearance},
	{"T", inspection.FieldPrintColor},
	{"U", inspection.FieldMisPrint},
	{"V", inspection.FieldDirtyPrint},
	{"W", inspection.FieldTapeTest},
	{"X", inspection.FieldCentralization},
	{"Y", inspection.FieldWrinkles},
	{"Z", inspection.FieldPRS},
	{"AA", inspection.FieldRollCurve},
	{"AB", inspection.FieldCoreMisalignment},
	{"AC", inspection.FieldOthers},
}

var columnTitles = []struct {
	Col   string
	Title string
}{
	{"A", "Hr"}, {"B", "Min"}, {"C", "Lot"}, {"D", "Roll"}, {"E", "Arm"},
	{"F", "Wt (kg)"}, {"G", "Width (mm)"}, {"H", "GSM"}, {"I", "Thk"},
	{"J", "Dia"}, {"K", "Core ID"}, {"L", "Core OD"},
	{"M", "Lines/Strips"}, {"N", "Glossy"}, {"O", "Film Color"},
	{"P", "Pin Hole"}, {"Q", "Patch Mark"}, {"R", "Odour"}, {"S", "CT App."},
	{"T", "Print Color"}, {"U", "Mis Print"}, {"V", "Dirty Print"},
	{"W", "Tape Test"}, {"X", "Centralization"},
	{"Y", "Wrinkles"}, {"Z", "PRS"}, {"AA", "Roll Curve"},
	{"AB", "Core Misalign."}, {"AC", "Others"},
	{"AD", "A/R"}, {"AE", "Defect / Remarks"}, {"AF", "Inspected By"},
}

// InlineExportAPI streams the inline inspection form of one shift as xlsx.
func InlineExportAPI(c *fiber.Ctx) error {
	traceabilityCode := c.Query("traceability_code")
	if traceabilityCode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "traceability_code is required"})
	}
	lotLetter := c.Query("lot_letter")
	mcNo := c.Query("mc_no")

	db := config.GetDB()
	lots, table, err := findLots(db, traceabilityCode, mcNo)
	if err != nil {
		log.Printf("Error loading lots for export %s: %v", traceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch data"})
	}
	if lotLetter != "" {
		filtered := lots[:0]
		for _, lot := range lots {
			if lot.LotLetter == lotLetter {
				filtered = append(filtered, lot)
			}
		}
		lots = filtered
	}
	if len(lots) == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No inspection data found"})
	}

	for _, lot := range lots {
		database.BackfillHeader(db, table, lot)
	}

	f, err := BuildInlineWorkbook(lots, config.AppConfig.ExportPassword)
	if err != nil {
		log.Printf("Error building inline workbook for %s: %v", traceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build workbook"})
	}
	defer f.Close()

	header := headerLot(lots)
	prodCode := ""
	if header.ProdCode != nil {
		prodCode = *header.ProdCode
	}
	filename := fmt.Sprintf("ILIF-%s-%s-Shift-%s.xlsx",
		traceabilityCode, prodCode, shiftLetter(header.Shift))

	return sendWorkbook(c, f, filename)
}

// findLots resolves the master table: the machine number picks it directly,
// otherwise the three tables are probed in order.
func findLots(db *sql.DB, traceabilityCode, mcNo string) ([]*models.InspectionLot, string, error) {
	if mcNo != "" {
		table := database.TableForMachine(mcNo)
		lots, err := database.GetLotsByTraceability(db, table, traceabilityCode)
		return lots, table, err
	}
	for _, table := range database.MasterTables {
		lots, err := database.GetLotsByTraceability(db, table, traceabilityCode)
		if err != nil {
			return nil, "", err
		}
		if len(lots) > 0 {
			return lots, table, nil
		}
	}
	return nil, database.MasterTables[0], nil
}

// BuildInlineWorkbook renders sorted lots into the three-page report layout.
// Rows flow page to page at capacity; each page's subtotal block covers only
// the rolls written to that page.
func BuildInlineWorkbook(lots []*models.InspectionLot, password string) (*excelize.File, error) {
	sortLots(lots)
	header := headerLot(lots)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pageName(1)); err != nil {
		f.Close()
		return nil, err
	}

	page := 1
	row := dataStartRow
	pageRolls := make(map[int][]models.RollEntry)
	if err := writePageHeader(f, pageName(1), header, 1); err != nil {
		f.Close()
		return nil, err
	}

	for li, lot := range lots {
		rolls := inspection.RollsFromLot(lot)
		if li > 0 && row > dataStartRow && row <= dataEndRow {
			row++ // blank separator between lots
		}
		for ri := range rolls {
			if row > dataEndRow {
				if page == maxPages {
					break
				}
				page++
				row = dataStartRow
				name := pageName(page)
				if _, err := f.NewSheet(name); err != nil {
					f.Close()
					return nil, err
				}
				if err := writePageHeader(f, name, header, page); err != nil {
					f.Close()
					return nil, err
				}
			}
			if err := writeRoll(f, pageName(page), row, &rolls[ri], ri == 0); err != nil {
				f.Close()
				return nil, err
			}
			pageRolls[page] = append(pageRolls[page], rolls[ri])
			row++
		}
	}

	for p := 1; p <= page; p++ {
		name := pageName(p)
		if err := writeSubtotals(f, name, pageRolls[p]); err != nil {
			f.Close()
			return nil, err
		}
		if password != "" {
			if err := f.ProtectSheet(name, &excelize.SheetProtectionOptions{
				Password:            password,
				SelectLockedCells:   true,
				SelectUnlockedCells: true,
			}); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func pageName(n int) string {
	return fmt.Sprintf("Page%d", n)
}

// sortLots orders lots numerically by lot number; unnumbered lots sink to
// the end in creation order.
func sortLots(lots []*models.InspectionLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		return lotNumber(lots[i]) < lotNumber(lots[j])
	})
}

func lotNumber(lot *models.InspectionLot) int {
	if lot.LotNo == nil {
		return 1 << 30
	}
	n, err := strconv.Atoi(*lot.LotNo)
	if err != nil {
		return 1 << 30
	}
	return n
}

// headerLot picks the lot whose header fields fill the page header: the
// first one carrying a customer, else the first lot.
func headerLot(lots []*models.InspectionLot) *models.InspectionLot {
	for _, lot := range lots {
		if lot.Customer != nil && *lot.Customer != "" {
			return lot
		}
	}
	return lots[0]
}

const tick = "✔"

func writePageHeader(f *excelize.File, sheet string, lot *models.InspectionLot, page int) error {
	cells := map[string]interface{}{
		"A1":  "SWANSON PLASTICS INDIA PVT. LTD.",
		"A2":  "INLINE INSPECTION OF FILM",
		"A3":  fmt.Sprintf("Page %d of %d", page, maxPages),
		"B5":  "Customer:",
		"B6":  "Production No:",
		"B7":  "Prod Code:",
		"B8":  "Spec:",
		"M7":  "Year",
		"O7":  "Month",
		"Q7":  "Date",
		"S7":  "M/C",
		"U7":  "Shift",
		"K6":  "Printed",
		"K7":  "Non-Printed",
		"K8":  "CT",
		"E10": "Random",
		"H10": "Matte",
		"K10": "Micro",
		"AD5": "Traceability:",
		"AE5": lot.TraceabilityCode,
		"AD6": "Production Date:",
		"AD7": "Shift:",
		"AE7": lot.Shift,
		"AD8": "M/C:",
		"AE8": lot.McNo,
		"N7":  lot.Year,
		"P7":  lot.Month,
		"R7":  lot.Date,
		"T7":  lot.McNo,
		"V7":  lot.Shift,
	}

	setOptional := func(cell string, v *string) {
		if v != nil {
			cells[cell] = *v
		}
	}
	setOptional("D5", lot.Customer)
	setOptional("D6", lot.ProductionNo)
	setOptional("D7", lot.ProdCode)
	setOptional("D8", lot.Spec)
	if lot.ProductionDate != nil {
		cells["AE6"] = formatDDMMYYYY(*lot.ProductionDate)
	}
	if lot.Printed {
		cells["L6"] = tick
	}
	if lot.NonPrinted {
		cells["L7"] = tick
	}
	if lot.CT {
		cells["L8"] = tick
	}
	if lot.EmbossType != nil {
		switch *lot.EmbossType {
		case "Random":
			cells["F10"] = tick
		case "Matte":
			cells["I10"] = tick
		case "Micro":
			cells["L10"] = tick
		}
	}

	for _, ct := range columnTitles {
		cells[ct.Col+"12"] = ct.Title
	}

	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeRoll(f *excelize.File, sheet string, row int, roll *models.RollEntry, firstOfLot bool) error {
	for _, ec := range exportColumns {
		v := inspection.FieldValue(roll, ec.Field)
		if v == "" {
			continue
		}
		if err := setCell(f, sheet, ec.Col, row, v); err != nil {
			return err
		}
	}

	switch roll.AcceptReject {
	case inspection.DispositionAccept:
		if err := setCell(f, sheet, "AD", row, "O"); err != nil {
			return err
		}
	case inspection.DispositionReject, inspection.DispositionRework:
		if err := setCell(f, sheet, "AD", row, "X"); err != nil {
			return err
		}
	}

	note := roll.DefectName
	if note == "" {
		note = roll.Remarks
	}
	if note != "" {
		if err := setCell(f, sheet, "AE", row, note); err != nil {
			return err
		}
	}
	if firstOfLot && roll.InspectedBy != "" {
		if err := setCell(f, sheet, "AF", row, roll.InspectedBy); err != nil {
			return err
		}
	}
	return nil
}

// writeSubtotals fills the L84..N88 block: roll counts, weights, totals.
func writeSubtotals(f *excelize.File, sheet string, rolls []models.RollEntry) error {
	s := inspection.Summarize(rolls)
	cells := map[string]interface{}{
		"K84": "Accepted", "L84": s.AcceptedRolls, "N84": s.AcceptedWeight,
		"K85": "Rejected", "L85": s.RejectedRolls, "N85": s.RejectedWeight,
		"K86": "Rework", "L86": s.ReworkRolls, "N86": s.ReworkWeight,
		"K87": "KIV", "L87": s.KIVRolls, "N87": s.KIVWeight,
		"K88": "Total", "L88": s.TotalRolls, "N88": s.TotalWeight,
		"M83": "Rolls", "N83": "Weight (kg)",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet, col string, row int, v interface{}) error {
	return f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
}

func formatDDMMYYYY(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

func shiftLetter(shift string) string {
	switch shift {
	case "1":
		return "A"
	case "2":
		return "B"
	case "3":
		return "C"
	}
	return shift
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error serializing workbook %s: %v", filename, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to write workbook"})
	}

	c.Set(fiber.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set("Access-Control-Expose-Headers", "Content-Disposition")
	return c.Send(buf.Bytes())
}
