package converter

import (
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
)

func newConverterApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	root := t.TempDir()
	prev := config.AppConfig
	config.AppConfig = &config.Config{StorageRoot: root}
	t.Cleanup(func() { config.AppConfig = prev })

	app := fiber.New()
	SetupConverterRoutes(app)
	return app, root
}

func convertRequest(t *testing.T, app *fiber.App, file string) int {
	t.Helper()
	req := httptest.NewRequest("GET",
		"/api/convert-to-pdf?file="+url.QueryEscape(file), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestConvertToPDFRejectsMissingAndNonDocx(t *testing.T) {
	app, _ := newConverterApp(t)

	req := httptest.NewRequest("GET", "/api/convert-to-pdf", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)

	assert.Equal(t, 400, convertRequest(t, app, "report.pdf"))
}

func TestConvertToPDFConfinedToStorageRoot(t *testing.T) {
	app, _ := newConverterApp(t)

	// A real .docx outside the storage root must not be readable, whether
	// addressed absolutely or via traversal.
	outside := filepath.Join(t.TempDir(), "secret.docx")
	require.NoError(t, os.WriteFile(outside, []byte("outside"), 0o600))

	assert.Equal(t, 404, convertRequest(t, app, outside))
	assert.Equal(t, 404, convertRequest(t, app, "../../"+filepath.Base(outside)))
	assert.Equal(t, 404, convertRequest(t, app, "missing.docx"))
}

func TestStoragePathStripsTraversal(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig = &config.Config{StorageRoot: "/srv/storage"}
	t.Cleanup(func() { config.AppConfig = prev })

	assert.Equal(t, "/srv/storage/report.docx", storagePath("report.docx"))
	assert.Equal(t, "/srv/storage/etc/x.docx", storagePath("../../etc/x.docx"))
	assert.Equal(t, "/srv/storage/etc/x.docx", storagePath("/etc/x.docx"))
	assert.Equal(t, "/srv/storage/a/b.docx", storagePath("a/./b.docx"))
}
