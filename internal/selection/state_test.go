package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/medilink/reportgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	s := New()
	assert.Nil(t, s.CurrentFile())
	assert.Empty(t, s.Message())
}

func TestSelectFile_ClearsMessage(t *testing.T) {
	s := New()
	file := &models.SelectedFile{Name: "patients.xlsx", Content: []byte("x")}

	s.SetMessage("Failed to generate report: bad rows")
	s.SelectFile(file)
	assert.Same(t, file, s.CurrentFile())
	assert.Empty(t, s.Message())

	// Reselecting the same file is idempotent
	s.SetMessage("Report generated successfully ✅")
	s.SelectFile(file)
	s.SelectFile(file)
	assert.Same(t, file, s.CurrentFile())
	assert.Empty(t, s.Message())
}

func TestSelectFile_Nil(t *testing.T) {
	s := New()
	s.SelectFile(&models.SelectedFile{Name: "a.csv"})
	s.SelectFile(nil)
	assert.Nil(t, s.CurrentFile())
}

func TestObserve(t *testing.T) {
	s := New()
	var seen []Snapshot
	s.Observe(func(snap Snapshot) {
		seen = append(seen, snap)
		// Observers may read state without deadlocking
		_ = s.Message()
	})

	file := &models.SelectedFile{Name: "a.csv"}
	s.SelectFile(file)
	s.SetMessage("Generating report...")

	require.Len(t, seen, 2)
	assert.Same(t, file, seen[0].File)
	assert.Empty(t, seen[0].Message)
	assert.Equal(t, "Generating report...", seen[1].Message)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Patients.XLSX")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04"), 0644))

	file, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Patients.XLSX", file.Name)
	assert.Equal(t, []byte("PK\x03\x04"), file.Content)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.MediaType)
	assert.EqualValues(t, 4, file.Size())

	_, err = Open(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestAcceptedAndMediaType(t *testing.T) {
	assert.True(t, Accepted("a.xlsx"))
	assert.True(t, Accepted("a.XLS"))
	assert.True(t, Accepted("a.csv"))
	assert.False(t, Accepted("a.pdf"))
	assert.False(t, Accepted("noext"))

	assert.Equal(t, "text/csv", MediaTypeFor("a.csv"))
	assert.Equal(t, "application/octet-stream", MediaTypeFor("noext"))
}
