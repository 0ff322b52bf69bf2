package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/medilink/reportgen/internal/download"
	"github.com/medilink/reportgen/internal/logging"
	"github.com/medilink/reportgen/internal/models"
	"github.com/medilink/reportgen/internal/report"
	"github.com/medilink/reportgen/internal/selection"
	"github.com/medilink/reportgen/internal/storage"
	"github.com/medilink/reportgen/internal/testutil"
	"github.com/medilink/reportgen/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	log := logging.Discard()
	return NewServer(&Dependencies{
		Store:     store,
		Generator: report.NewGenerator(log),
		Log:       log,
		Version:   "test",
	}, MiddlewareOptions{
		RequestLogging: true,
		BodyLimit:      "1M",
		EnableCORS:     true,
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newTestEcho(t))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestUnknownRoute_JSONError(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "HTTP_ERROR", body["error"])
}

func TestBodyLimit(t *testing.T) {
	e := newTestEcho(t)
	body, contentType := multipartBody(t, "file", "huge.csv", bytes.Repeat([]byte("a"), 2<<20))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCORSExposesDisposition(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

// The upload controller against the real server, end to end.
func TestControllerRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	outDir := t.TempDir()
	log := logging.Discard()
	ctrl := upload.NewController(srv.URL+"/upload", srv.Client(), download.NewFileSaver(outDir, log), log)

	workbook := testutil.BuildWorkbook(t, [][]interface{}{
		testutil.HeaderRow(),
		{"Ada Lovelace", 36, "F", "O+", "Flu", "", "2024-03-01"},
	})
	sel := selection.New()
	sel.SelectFile(&models.SelectedFile{
		Name:      "patients.xlsx",
		Content:   workbook,
		MediaType: selection.MediaTypeFor("patients.xlsx"),
	})

	outcome, err := ctrl.Submit(context.Background(), sel)
	require.NoError(t, err)
	require.False(t, outcome.Failed(), outcome.Cause())
	assert.Equal(t, upload.MessageSuccess, sel.Message())
	assert.Equal(t, upload.PhaseIdle, ctrl.Phase())

	data, err := os.ReadFile(filepath.Join(outDir, upload.DefaultArchiveName))
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestControllerRoundTrip_StructuredError(t *testing.T) {
	srv := newTestServer(t)
	log := logging.Discard()
	saver := &testutil.RecordingSaver{}
	ctrl := upload.NewController(srv.URL+"/upload", srv.Client(), saver, log)

	sel := selection.New()
	sel.SelectFile(&models.SelectedFile{Name: "legacy.xls", Content: []byte{0xD0, 0xCF}})

	outcome, err := ctrl.Submit(context.Background(), sel)
	require.NoError(t, err)

	structured, ok := outcome.(*upload.StructuredError)
	require.True(t, ok, "got %T", outcome)
	assert.Equal(t, http.StatusUnsupportedMediaType, structured.StatusCode)
	assert.Contains(t, sel.Message(), "Failed to generate report: unsupported spreadsheet format")
	assert.Empty(t, saver.Saved())
}
