package inspection

import (
	"database/sql"
	"log"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func statusEngine() inspection.StatusEngine {
	engine := inspection.StatusEngine{}
	if config.AppConfig != nil {
		engine.KIVLocksRow = config.AppConfig.KIVLocksRow
	}
	return engine
}

// normalizeRolls re-runs the cell input transforms server-side so a direct
// API client cannot persist values the grid would have rejected. Indicator
// cells holding the programmatic "NA" prefill are left alone, and defect
// names come from the catalog verbatim.
func normalizeRolls(rolls []models.RollEntry) {
	for i := range rolls {
		for _, field := range inspection.FieldOrder {
			if field == inspection.FieldDefectName {
				continue
			}
			v := inspection.FieldValue(&rolls[i], field)
			if v == "" {
				continue
			}
			if inspection.IsIndicatorField(field) && v == "NA" {
				continue
			}
			inspection.SetField(&rolls[i], field, inspection.NormalizeCell(field, v))
		}
	}
}

func ListFormsAPI(c *fiber.Ctx) error {
	filters := database.FormFilters{
		Date:        c.Query("date"),
		McNo:        c.Query("mc_no"),
		ProdCode:    c.Query("prod_code"),
		Shift:       c.Query("shift"),
		Operator:    c.Query("operator"),
		Supervisor:  c.Query("supervisor"),
		QCInspector: c.Query("qc_inspector"),
	}

	forms, err := database.ListForms(config.GetDB(), filters)
	if err != nil {
		log.Printf("Error listing inspection forms: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch forms"})
	}

	return c.JSON(fiber.Map{"forms": forms})
}

func FilterOptionsAPI(c *fiber.Ctx) error {
	filters := database.FormFilters{
		Date:     c.Query("date"),
		McNo:     c.Query("mc_no"),
		ProdCode: c.Query("prod_code"),
	}

	opts, err := database.ListFilterOptions(config.GetDB(), filters)
	if err != nil {
		log.Printf("Error building filter options: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch filter options"})
	}

	return c.JSON(opts)
}

func CreateFormAPI(c *fiber.Ctx) error {
	type CreateFormRequest struct {
		Customer       *string `json:"customer"`
		ProductionNo   *string `json:"production_no"`
		ProdCode       *string `json:"prod_code"`
		Spec           *string `json:"spec"`
		ProductionDate *string `json:"production_date"`
		EmbossType     *string `json:"emboss_type"`
		Printed        bool    `json:"printed"`
		NonPrinted     bool    `json:"non_printed"`
		CT             bool    `json:"ct"`
		Year           string  `json:"year"`
		Month          string  `json:"month"`
		Date           string  `json:"date"`
		McNo           string  `json:"mc_no"`
		Shift          string  `json:"shift"`
		Supervisor     *string `json:"supervisor"`
		Supervisor2    *string `json:"supervisor2"`
		LineLeader     *string `json:"line_leader"`
		LineLeader2    *string `json:"line_leader2"`
		Operator       *string `json:"operator"`
		Operator2      *string `json:"operator2"`
		QCInspector    *string `json:"qc_inspector"`
		QCInspector2   *string `json:"qc_inspector2"`
	}

	var req CreateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Year == "" || req.Month == "" || req.Date == "" || req.McNo == "" || req.Shift == "" {
		return c.Status(400).JSON(fiber.Map{"error": "year, month, date, mc_no and shift are required"})
	}

	db := config.GetDB()
	traceabilityCode := req.Year + req.Month + req.Date + req.McNo + req.Shift
	table := database.TableForMachine(req.McNo)

	letter, err := database.NextLotLetter(db, table, traceabilityCode)
	if err != nil {
		log.Printf("Error assigning lot letter for %s: %v", traceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create form"})
	}
	lotNo, err := database.NextLotNumber(db, table, traceabilityCode)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create form"})
	}

	lot := &models.InspectionLot{
		FormID:           uuid.New().String(),
		TraceabilityCode: traceabilityCode,
		LotLetter:        letter,
		LotNo:            &lotNo,
		Customer:         req.Customer,
		ProductionNo:     req.ProductionNo,
		ProdCode:         req.ProdCode,
		Spec:             req.Spec,
		ProductionDate:   req.ProductionDate,
		EmbossType:       req.EmbossType,
		Printed:          req.Printed,
		NonPrinted:       req.NonPrinted,
		CT:               req.CT,
		Year:             req.Year,
		Month:            req.Month,
		Date:             req.Date,
		McNo:             req.McNo,
		Shift:            req.Shift,
		Supervisor:       req.Supervisor,
		Supervisor2:      req.Supervisor2,
		LineLeader:       req.LineLeader,
		LineLeader2:      req.LineLeader2,
		Operator:         req.Operator,
		Operator2:        req.Operator2,
		QCInspector:      req.QCInspector,
		QCInspector2:     req.QCInspector2,
		Status:           "draft",
	}
	inspection.ApplyRollsToLot(lot, nil)

	if err := database.InsertLot(db, table, lot); err != nil {
		log.Printf("Error creating inspection form: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create form"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Form created",
		"lot":     lot,
	})
}

// GetLotsAPI loads every lot of one shift/machine form. When none exist yet
// the first lot is auto-created so the grid always has a table to render.
func GetLotsAPI(c *fiber.Ctx) error {
	traceabilityCode := c.Query("traceability_code")
	mcNo := c.Query("mc_no")
	if traceabilityCode == "" || mcNo == "" {
		return c.Status(400).JSON(fiber.Map{"error": "traceability_code and mc_no are required"})
	}

	db := config.GetDB()
	table := database.TableForMachine(mcNo)

	lots, err := database.GetLotsByTraceability(db, table, traceabilityCode)
	if err != nil {
		log.Printf("Error loading lots for %s: %v", traceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch lots"})
	}

	if len(lots) == 0 {
		lotNo := "01"
		lot := &models.InspectionLot{
			FormID:           uuid.New().String(),
			TraceabilityCode: traceabilityCode,
			LotLetter:        "A",
			LotNo:            &lotNo,
			McNo:             mcNo,
			Status:           "draft",
		}
		inspection.ApplyRollsToLot(lot, nil)
		if err := database.InsertLot(db, table, lot); err != nil {
			log.Printf("Error auto-creating first lot for %s: %v", traceabilityCode, err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create lot"})
		}
		lots = []*models.InspectionLot{lot}
	} else if lots[0].LotNo == nil {
		// A cleared first lot loses its number; repair on load.
		if err := database.RepairFirstLotNumber(db, table, traceabilityCode); err == nil {
			lotNo := "01"
			lots[0].LotNo = &lotNo
		}
	}

	payload := make([]fiber.Map, 0, len(lots))
	for _, lot := range lots {
		database.BackfillHeader(db, table, lot)
		payload = append(payload, fiber.Map{
			"lot":   lot,
			"rolls": inspection.RollsFromLot(lot),
		})
	}

	return c.JSON(fiber.Map{"lots": payload})
}

// AddLotAPI appends a new lot table to a shift form: next unused lot letter,
// next sequential lot number, header inherited from the sibling lots.
func AddLotAPI(c *fiber.Ctx) error {
	type AddLotRequest struct {
		TraceabilityCode string `json:"traceability_code"`
		McNo             string `json:"mc_no"`
		Rows             int    `json:"rows"`
	}

	var req AddLotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.TraceabilityCode == "" || req.McNo == "" {
		return c.Status(400).JSON(fiber.Map{"error": "traceability_code and mc_no are required"})
	}

	db := config.GetDB()
	table := database.TableForMachine(req.McNo)

	letter, err := database.NextLotLetter(db, table, req.TraceabilityCode)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add lot"})
	}
	lotNo, err := database.NextLotNumber(db, table, req.TraceabilityCode)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add lot"})
	}

	lot := &models.InspectionLot{
		FormID:           uuid.New().String(),
		TraceabilityCode: req.TraceabilityCode,
		LotLetter:        letter,
		LotNo:            &lotNo,
		McNo:             req.McNo,
		Status:           "draft",
	}
	database.BackfillHeader(db, table, lot)

	rolls := make([]models.RollEntry, req.Rows)
	if lot.NonPrinted {
		for i := range rolls {
			inspection.PrefillNonPrinted(&rolls[i])
		}
	}
	inspection.ApplyRollsToLot(lot, rolls)

	if err := database.InsertLot(db, table, lot); err != nil {
		log.Printf("Error adding lot to %s: %v", req.TraceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add lot"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Lot added",
		"lot":     lot,
		"rolls":   inspection.RollsFromLot(lot),
	})
}

func loadLot(c *fiber.Ctx) (*models.InspectionLot, string, error) {
	mcNo := c.Query("mc_no")
	if mcNo == "" {
		return nil, "", c.Status(400).JSON(fiber.Map{"error": "mc_no is required"})
	}
	table := database.TableForMachine(mcNo)

	lot, err := database.GetLotByFormID(config.GetDB(), table, c.Params("form_id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", c.Status(404).JSON(fiber.Map{"error": "Form not found"})
		}
		log.Printf("Error loading lot %s: %v", c.Params("form_id"), err)
		return nil, "", c.Status(500).JSON(fiber.Map{"error": "Failed to fetch lot"})
	}
	return lot, table, nil
}

// SaveLotAPI accepts a full lot document. Plain cell edits ride the debounce;
// immediate=true (disposition dropdowns, add-rows) flushes synchronously.
func SaveLotAPI(c *fiber.Ctx) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	var doc models.LotDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	normalizeRolls(doc.Rolls)

	if c.Query("immediate") == "true" {
		if err := saver.SaveNow(table, lot, doc); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(404).JSON(fiber.Map{"error": "Form not found"})
			}
			log.Printf("Error saving lot %s: %v", lot.FormID, err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save lot"})
		}
	} else {
		saver.Schedule(table, lot, doc)
	}

	return c.JSON(fiber.Map{
		"message":     "Saved",
		"summary":     lot.Summary,
		"total_rolls": lot.TotalRolls,
	})
}

func AddRowsAPI(c *fiber.Ctx) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	type AddRowsRequest struct {
		Count int `json:"count"`
	}
	var req AddRowsRequest
	if err := c.BodyParser(&req); err != nil || req.Count <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "count must be positive"})
	}

	rolls := inspection.RollsFromLot(lot)
	for i := 0; i < req.Count; i++ {
		var roll models.RollEntry
		if lot.NonPrinted {
			inspection.PrefillNonPrinted(&roll)
		}
		rolls = append(rolls, roll)
	}

	doc := models.LotDocument{Rolls: rolls}
	if err := saver.SaveNow(table, lot, doc); err != nil {
		log.Printf("Error adding rows to %s: %v", lot.FormID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add rows"})
	}

	return c.JSON(fiber.Map{
		"message":     "Rows added",
		"total_rolls": lot.TotalRolls,
		"rolls":       inspection.RollsFromLot(lot),
	})
}

// SetDispositionAPI applies a dropdown change through the row status engine
// and flushes the document immediately.
func SetDispositionAPI(c *fiber.Ctx) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	type DispositionRequest struct {
		Position int    `json:"position"`
		Value    string `json:"value"`
	}
	var req DispositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	valid := false
	for _, opt := range inspection.DropdownOptions {
		if req.Value == opt {
			valid = true
			break
		}
	}
	if !valid {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid disposition value"})
	}

	rolls := inspection.RollsFromLot(lot)
	idx := req.Position - 1
	if idx < 0 || idx >= len(rolls) {
		return c.Status(400).JSON(fiber.Map{"error": "Roll position out of range"})
	}

	engine := statusEngine()
	engine.ApplyDisposition(&rolls[idx], req.Value)

	if err := saver.SaveNow(table, lot, models.LotDocument{Rolls: rolls}); err != nil {
		log.Printf("Error saving disposition for %s: %v", lot.FormID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save disposition"})
	}

	return c.JSON(fiber.Map{
		"roll":     rolls[idx],
		"editable": engine.EditableFields(req.Value),
		"summary":  lot.Summary,
	})
}

// IndicatorChangeAPI writes one O/X cell and runs the auto-disposition pass:
// any X forces Reject with a defect auto-fill, a full row of O forces Accept.
func IndicatorChangeAPI(c *fiber.Ctx) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	type IndicatorRequest struct {
		Position int    `json:"position"`
		Field    string `json:"field"`
		Value    string `json:"value"`
	}
	var req IndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if !inspection.IsIndicatorField(req.Field) {
		return c.Status(400).JSON(fiber.Map{"error": "Not an indicator field"})
	}

	rolls := inspection.RollsFromLot(lot)
	idx := req.Position - 1
	if idx < 0 || idx >= len(rolls) {
		return c.Status(400).JSON(fiber.Map{"error": "Roll position out of range"})
	}

	inspection.SetField(&rolls[idx], req.Field, inspection.NormalizeCell(req.Field, req.Value))

	activeDefects, err := database.ActiveDefectNames(config.GetDB())
	if err != nil {
		log.Printf("Error loading defect catalog: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load defects"})
	}
	statusEngine().ApplyIndicatorChange(&rolls[idx], activeDefects)

	if err := saver.SaveNow(table, lot, models.LotDocument{Rolls: rolls}); err != nil {
		log.Printf("Error saving indicator change for %s: %v", lot.FormID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save"})
	}

	return c.JSON(fiber.Map{
		"roll":    rolls[idx],
		"summary": lot.Summary,
	})
}

func bulkIndicator(c *fiber.Ctx, apply func(*models.RollEntry)) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	type BulkRequest struct {
		Position *int `json:"position"`
	}
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	rolls := inspection.RollsFromLot(lot)
	if req.Position != nil {
		idx := *req.Position - 1
		if idx < 0 || idx >= len(rolls) {
			return c.Status(400).JSON(fiber.Map{"error": "Roll position out of range"})
		}
		apply(&rolls[idx])
	} else {
		for i := range rolls {
			apply(&rolls[i])
		}
	}

	if err := saver.SaveNow(table, lot, models.LotDocument{Rolls: rolls}); err != nil {
		log.Printf("Error saving bulk indicator change for %s: %v", lot.FormID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save"})
	}

	return c.JSON(fiber.Map{
		"rolls":   rolls,
		"summary": lot.Summary,
	})
}

func FillOAPI(c *fiber.Ctx) error {
	return bulkIndicator(c, inspection.FillO)
}

func ClearOAPI(c *fiber.Ctx) error {
	return bulkIndicator(c, inspection.ClearO)
}

// DeleteLotAPI removes a lot table. The first lot of a shift is cleared, not
// deleted; later lots are deleted and the survivors renumbered.
func DeleteLotAPI(c *fiber.Ctx) error {
	lot, table, err := loadLot(c)
	if lot == nil {
		return err
	}

	db := config.GetDB()
	lots, err := database.GetLotsByTraceability(db, table, lot.TraceabilityCode)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch lots"})
	}

	if len(lots) > 0 && lots[0].FormID == lot.FormID {
		if err := database.ClearLot(db, table, lot.FormID); err != nil {
			log.Printf("Error clearing lot %s: %v", lot.FormID, err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to clear lot"})
		}
		return c.JSON(fiber.Map{"message": "Lot cleared"})
	}

	if err := database.DeleteLot(db, table, lot.FormID); err != nil {
		log.Printf("Error deleting lot %s: %v", lot.FormID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete lot"})
	}
	if err := database.ReorderLotNumbers(db, table, lot.TraceabilityCode); err != nil {
		log.Printf("Error renumbering lots for %s: %v", lot.TraceabilityCode, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to renumber lots"})
	}

	return c.JSON(fiber.Map{"message": "Lot deleted"})
}

func shiftRolls(c *fiber.Ctx) ([][]models.RollEntry, error) {
	traceabilityCode := c.Query("traceability_code")
	mcNo := c.Query("mc_no")
	if traceabilityCode == "" || mcNo == "" {
		return nil, c.Status(400).JSON(fiber.Map{"error": "traceability_code and mc_no are required"})
	}

	table := database.TableForMachine(mcNo)
	lots, err := database.GetLotsByTraceability(config.GetDB(), table, traceabilityCode)
	if err != nil {
		log.Printf("Error loading lots for %s: %v", traceabilityCode, err)
		return nil, c.Status(500).JSON(fiber.Map{"error": "Failed to fetch lots"})
	}

	all := make([][]models.RollEntry, 0, len(lots))
	for _, lot := range lots {
		all = append(all, inspection.RollsFromLot(lot))
	}
	return all, nil
}

func StatisticsAPI(c *fiber.Ctx) error {
	lots, err := shiftRolls(c)
	if lots == nil {
		return err
	}
	return c.JSON(fiber.Map{"statistics": inspection.Statistics(lots)})
}

func ProductionSummaryAPI(c *fiber.Ctx) error {
	lots, err := shiftRolls(c)
	if lots == nil {
		return err
	}
	return c.JSON(fiber.Map{"production": inspection.ProductionSummary(lots)})
}

// DefectSummaryAPI returns the defect frequency table; ipqc=true restricts it
// to lots inspected by quality-control staff.
func DefectSummaryAPI(c *fiber.Ctx) error {
	lots, err := shiftRolls(c)
	if lots == nil {
		return err
	}

	if c.Query("ipqc") == "true" {
		qcInspectors, err := database.GetQCInspectors(config.GetDB())
		if err != nil {
			log.Printf("Error loading QC roster: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to load QC roster"})
		}
		return c.JSON(fiber.Map{"defects": inspection.IPQCDefectCounts(lots, qcInspectors)})
	}

	return c.JSON(fiber.Map{"defects": inspection.DefectCounts(lots)})
}
