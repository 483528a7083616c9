package autocomplete

import (
	"log"
	"sort"
	"strings"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"

	"github.com/gofiber/fiber/v2"
)

// DefectsAPI suggests active defect names by prefix. With no query text the
// whole active catalog comes back alphabetical.
func DefectsAPI(c *fiber.Ctx) error {
	names, err := database.ActiveDefectNames(config.GetDB())
	if err != nil {
		log.Printf("Error loading defect catalog: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch defects"})
	}

	q := strings.ToLower(c.Query("q"))
	if q != "" {
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if strings.HasPrefix(strings.ToLower(name), q) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	return c.JSON(fiber.Map{"defects": names})
}

// InspectorsAPI suggests inspector names from the inspection-relevant
// departments, substring match on the typed text.
func InspectorsAPI(c *fiber.Ctx) error {
	names, err := database.GetInspectorNames(config.GetDB())
	if err != nil {
		log.Printf("Error loading inspector names: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch inspectors"})
	}

	q := strings.ToLower(c.Query("q"))
	if q != "" {
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), q) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	return c.JSON(fiber.Map{"inspectors": names})
}

// QCInspectorsAPI returns the quality-control roster used by the IPQC defect
// summary.
func QCInspectorsAPI(c *fiber.Ctx) error {
	set, err := database.GetQCInspectors(config.GetDB())
	if err != nil {
		log.Printf("Error loading QC roster: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch QC inspectors"})
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	return c.JSON(fiber.Map{"qc_inspectors": names})
}
