package inspection

import (
	"strconv"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// The single row serializer between the stored per-column JSONB maps and the
// ordered rolls slice. Both directions key off the same field table, so the
// document shape cannot drift between the save path and the exporters.

// RollsFromLot rebuilds the ordered roll entries of a lot from its JSONB
// maps. Positions run 1..TotalRolls; a position absent from every map still
// yields an (empty) roll so row count is preserved.
func RollsFromLot(lot *models.InspectionLot) []models.RollEntry {
	n := lot.TotalRolls
	for _, m := range []models.FieldMap{
		lot.RollWeights, lot.RollWidths, lot.FilmWeightsGSM,
		lot.ThicknessData, lot.RollDiameters, lot.AcceptRejectStatus,
		lot.DefectNames, lot.RemarksData,
	} {
		if len(m) > n {
			n = maxPosition(m, n)
		}
	}

	rolls := make([]models.RollEntry, 0, n)
	for i := 1; i <= n; i++ {
		pos := strconv.Itoa(i)
		roll := models.RollEntry{
			RollPosition: pos,
			Hour:         nested(lot.TimeData, "hour", pos),
			Minute:       nested(lot.TimeData, "minute", pos),
			Arm:          lot.Arm,

			RollWeight:     lot.RollWeights[pos],
			RollWidthMM:    lot.RollWidths[pos],
			FilmWeightGSM:  lot.FilmWeightsGSM[pos],
			Thickness:      lot.ThicknessData[pos],
			RollDia:        lot.RollDiameters[pos],
			PaperCoreDiaID: nested(lot.PaperCoreData, "id", pos),
			PaperCoreDiaOD: nested(lot.PaperCoreData, "od", pos),

			LinesStrips:  nested(lot.FilmAppearance, FieldLinesStrips, pos),
			Glossy:       nested(lot.FilmAppearance, FieldGlossy, pos),
			FilmColor:    nested(lot.FilmAppearance, FieldFilmColor, pos),
			PinHole:      nested(lot.FilmAppearance, FieldPinHole, pos),
			PatchMark:    nested(lot.FilmAppearance, FieldPatchMark, pos),
			Odour:        nested(lot.FilmAppearance, FieldOdour, pos),
			CTAppearance: nested(lot.FilmAppearance, FieldCTAppearance, pos),

			PrintColor:     nested(lot.PrintingQuality, FieldPrintColor, pos),
			MisPrint:       nested(lot.PrintingQuality, FieldMisPrint, pos),
			DirtyPrint:     nested(lot.PrintingQuality, FieldDirtyPrint, pos),
			TapeTest:       nested(lot.PrintingQuality, FieldTapeTest, pos),
			Centralization: nested(lot.PrintingQuality, FieldCentralization, pos),

			Wrinkles:         nested(lot.RollAppearance, FieldWrinkles, pos),
			PRS:              nested(lot.RollAppearance, FieldPRS, pos),
			RollCurve:        nested(lot.RollAppearance, FieldRollCurve, pos),
			CoreMisalignment: nested(lot.RollAppearance, FieldCoreMisalignment, pos),
			Others:           nested(lot.RollAppearance, FieldOthers, pos),

			AcceptReject: lot.AcceptRejectStatus[pos],
			DefectName:   lot.DefectNames[pos],
			Remarks:      lot.RemarksData[pos],
		}
		if lot.LotNo != nil {
			roll.LotNo = *lot.LotNo
		}
		if i == 1 {
			roll.InspectedBy = lot.InspectedBy
		}
		rolls = append(rolls, roll)
	}
	return rolls
}

// ApplyRollsToLot writes an ordered rolls slice back into a lot's JSONB
// maps, overwriting them wholesale, and recomputes the summary. Roll
// positions are derived from slice order, never trusted from the input.
func ApplyRollsToLot(lot *models.InspectionLot, rolls []models.RollEntry) {
	lot.RollWeights = make(models.FieldMap)
	lot.RollWidths = make(models.FieldMap)
	lot.FilmWeightsGSM = make(models.FieldMap)
	lot.ThicknessData = make(models.FieldMap)
	lot.RollDiameters = make(models.FieldMap)
	lot.AcceptRejectStatus = make(models.FieldMap)
	lot.DefectNames = make(models.FieldMap)
	lot.RemarksData = make(models.FieldMap)
	lot.FilmAppearance = newNested(FieldLinesStrips, FieldGlossy, FieldFilmColor,
		FieldPinHole, FieldPatchMark, FieldOdour, FieldCTAppearance)
	lot.PrintingQuality = newNested(FieldPrintColor, FieldMisPrint,
		FieldDirtyPrint, FieldTapeTest, FieldCentralization)
	lot.RollAppearance = newNested(FieldWrinkles, FieldPRS, FieldRollCurve,
		FieldCoreMisalignment, FieldOthers)
	lot.PaperCoreData = newNested("id", "od")
	lot.TimeData = newNested("hour", "minute")

	for i, roll := range rolls {
		pos := strconv.Itoa(i + 1)
		setIfNotEmpty(lot.RollWeights, pos, roll.RollWeight)
		setIfNotEmpty(lot.RollWidths, pos, roll.RollWidthMM)
		setIfNotEmpty(lot.FilmWeightsGSM, pos, roll.FilmWeightGSM)
		setIfNotEmpty(lot.ThicknessData, pos, roll.Thickness)
		setIfNotEmpty(lot.RollDiameters, pos, roll.RollDia)
		setIfNotEmpty(lot.AcceptRejectStatus, pos, roll.AcceptReject)
		setIfNotEmpty(lot.DefectNames, pos, roll.DefectName)
		setIfNotEmpty(lot.RemarksData, pos, roll.Remarks)

		setIfNotEmpty(lot.FilmAppearance[FieldLinesStrips], pos, roll.LinesStrips)
		setIfNotEmpty(lot.FilmAppearance[FieldGlossy], pos, roll.Glossy)
		setIfNotEmpty(lot.FilmAppearance[FieldFilmColor], pos, roll.FilmColor)
		setIfNotEmpty(lot.FilmAppearance[FieldPinHole], pos, roll.PinHole)
		setIfNotEmpty(lot.FilmAppearance[FieldPatchMark], pos, roll.PatchMark)
		setIfNotEmpty(lot.FilmAppearance[FieldOdour], pos, roll.Odour)
		setIfNotEmpty(lot.FilmAppearance[FieldCTAppearance], pos, roll.CTAppearance)

		setIfNotEmpty(lot.PrintingQuality[FieldPrintColor], pos, roll.PrintColor)
		setIfNotEmpty(lot.PrintingQuality[FieldMisPrint], pos, roll.MisPrint)
		setIfNotEmpty(lot.PrintingQuality[FieldDirtyPrint], pos, roll.DirtyPrint)
		setIfNotEmpty(lot.PrintingQuality[FieldTapeTest], pos, roll.TapeTest)
		setIfNotEmpty(lot.PrintingQuality[FieldCentralization], pos, roll.Centralization)

		setIfNotEmpty(lot.RollAppearance[FieldWrinkles], pos, roll.Wrinkles)
		setIfNotEmpty(lot.RollAppearance[FieldPRS], pos, roll.PRS)
		setIfNotEmpty(lot.RollAppearance[FieldRollCurve], pos, roll.RollCurve)
		setIfNotEmpty(lot.RollAppearance[FieldCoreMisalignment], pos, roll.CoreMisalignment)
		setIfNotEmpty(lot.RollAppearance[FieldOthers], pos, roll.Others)

		setIfNotEmpty(lot.PaperCoreData["id"], pos, roll.PaperCoreDiaID)
		setIfNotEmpty(lot.PaperCoreData["od"], pos, roll.PaperCoreDiaOD)
		setIfNotEmpty(lot.TimeData["hour"], pos, roll.Hour)
		setIfNotEmpty(lot.TimeData["minute"], pos, roll.Minute)

		if i == 0 && roll.InspectedBy != "" {
			lot.InspectedBy = roll.InspectedBy
		}
	}

	lot.TotalRolls = len(rolls)
	lot.Summary = Summarize(rolls)
	lot.Summary.TotalRolls = lot.Summary.AcceptedRolls + lot.Summary.RejectedRolls +
		lot.Summary.ReworkRolls + lot.Summary.KIVRolls
}

func newNested(keys ...string) map[string]models.FieldMap {
	m := make(map[string]models.FieldMap, len(keys))
	for _, k := range keys {
		m[k] = make(models.FieldMap)
	}
	return m
}

func nested(m map[string]models.FieldMap, key, pos string) string {
	if m == nil {
		return ""
	}
	return m[key][pos]
}

func setIfNotEmpty(m models.FieldMap, pos, v string) {
	if v != "" {
		m[pos] = v
	}
}

func maxPosition(m models.FieldMap, n int) int {
	for k := range m {
		if p, err := strconv.Atoi(k); err == nil && p > n {
			n = p
		}
	}
	return n
}
