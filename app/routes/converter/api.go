package converter

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
)

// convertTimeout bounds one LibreOffice run; the process is killed when it
// expires.
const convertTimeout = 30 * time.Second

// storagePath resolves a user-supplied file reference inside the configured
// storage root. Rooting the cleaned path at "/" first strips any ".." and
// absolute prefixes, so the result can never escape the root.
func storagePath(file string) string {
	root := "./storage"
	if config.AppConfig != nil && config.AppConfig.StorageRoot != "" {
		root = config.AppConfig.StorageRoot
	}
	return filepath.Join(root, filepath.Clean("/"+file))
}

// ConvertToPDFAPI converts a .docx file from the storage root to PDF via
// headless LibreOffice and streams the result inline. Temp files are removed
// on every path.
func ConvertToPDFAPI(c *fiber.Ctx) error {
	file := c.Query("file")
	if file == "" {
		return c.Status(400).JSON(fiber.Map{"error": "file parameter is required"})
	}
	if !strings.EqualFold(filepath.Ext(file), ".docx") {
		return c.Status(400).JSON(fiber.Map{"error": "Only .docx files can be converted"})
	}

	path := storagePath(file)
	input, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Conversion input not readable %s: %v", path, err)
		return c.Status(404).JSON(fiber.Map{"error": "File not found"})
	}

	tmpDir, err := os.MkdirTemp("", "docx2pdf-*")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create temp directory"})
	}
	defer os.RemoveAll(tmpDir)

	base := filepath.Base(file)
	tmpInput := filepath.Join(tmpDir, base)
	if err := os.WriteFile(tmpInput, input, 0o600); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to stage input file"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "libreoffice", "--headless",
		"--convert-to", "pdf", "--outdir", tmpDir, tmpInput)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("Conversion timed out for %s", base)
			return c.Status(500).JSON(fiber.Map{"error": "Conversion timed out"})
		}
		log.Printf("Conversion failed for %s: %v (%s)", base, err, output)
		return c.Status(500).JSON(fiber.Map{"error": "Conversion failed"})
	}

	pdfName := strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
	pdf, err := os.ReadFile(filepath.Join(tmpDir, pdfName))
	if err != nil {
		log.Printf("Converted PDF missing for %s: %v", base, err)
		return c.Status(500).JSON(fiber.Map{"error": "Conversion produced no output"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, pdfName))
	return c.Send(pdf)
}
