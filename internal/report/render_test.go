package report

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/medilink/reportgen/internal/logging"
	"github.com/medilink/reportgen/internal/models"
	"github.com/medilink/reportgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(content)
	}
	return files
}

func TestRender(t *testing.T) {
	patients := []models.Patient{
		{Row: 2, Name: "Ada Lovelace", Age: "36", Sex: "F", BloodType: "O+", Diagnosis: "Flu", Notes: "N/A", TestDate: "2024-05-01"},
		{Row: 3, Name: "<script>alert(1)</script>", Age: "N/A", Sex: "N/A", BloodType: "N/A", Diagnosis: "N/A", Notes: "N/A", TestDate: "N/A"},
	}
	generated := time.Date(2024, 5, 3, 10, 30, 0, 0, time.UTC)

	data, err := Render(patients, "patients.xlsx", generated)
	require.NoError(t, err)

	files := readArchive(t, data)
	require.Len(t, files, 3)

	ada := files["patient_001_ada_lovelace.html"]
	assert.Contains(t, ada, "<b>Name:</b> Ada Lovelace")
	assert.Contains(t, ada, "<b>Blood Type:</b> O&#43;", "html/template escapes +")
	assert.Contains(t, ada, "Generated 2024-05-03 10:30 from patients.xlsx, row 2")

	script := files["patient_002_script_alert_1_script.html"]
	assert.NotContains(t, script, "<script>")
	assert.Contains(t, script, "&lt;script&gt;")

	index := files[IndexName]
	assert.Contains(t, index, "2 report(s)")
	assert.Contains(t, index, `href="patient_001_ada_lovelace.html"`)
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		n    int
		name string
		want string
	}{
		{1, "Ada Lovelace", "patient_001_ada_lovelace.html"},
		{12, "  O'Brien, Pat ", "patient_012_o_brien_pat.html"},
		{3, "N/A", "patient_003_unnamed.html"},
		{4, "Łukasz", "patient_004_ukasz.html"},
		{5, "李雷", "patient_005_unnamed.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reportFileName(tt.n, tt.name))
	}
}

func TestGenerator_Generate(t *testing.T) {
	data := testutil.BuildWorkbook(t, [][]interface{}{
		testutil.HeaderRow(),
		{"Ada Lovelace", 36, "F", "O+", "Flu", "Rest", "2024-05-01"},
	})
	path := writeTemp(t, "stored.xlsx", data)

	g := NewGenerator(logging.Discard())
	g.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC) }

	result, err := g.Generate(path, "patients.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Patients)

	files := readArchive(t, result.Archive)
	assert.Contains(t, files, "patient_001_ada_lovelace.html")
	assert.Contains(t, files, IndexName)
}
