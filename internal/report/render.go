package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/medilink/reportgen/internal/models"
)

// IndexName is the summary document at the root of every archive.
const IndexName = "index.html"

const patientTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Patient Report - {{.Patient.Name}}</title></head>
<body>
  <h2>Patient Report</h2>
  <p><b>Name:</b> {{.Patient.Name}}</p>
  <p><b>Age:</b> {{.Patient.Age}}</p>
  <p><b>Sex:</b> {{.Patient.Sex}}</p>
  <p><b>Blood Type:</b> {{.Patient.BloodType}}</p>
  <p><b>Diagnosis:</b> {{.Patient.Diagnosis}}</p>
  <p><b>Notes:</b> {{.Patient.Notes}}</p>
  <p><b>Date:</b> {{.Patient.TestDate}}</p>
  <hr>
  <small>Generated {{.Generated}} from {{.Source}}, row {{.Patient.Row}}</small>
</body></html>
`

const indexTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Patient Reports</title></head>
<body>
  <h2>Patient Reports</h2>
  <p>{{len .Entries}} report(s) generated {{.Generated}} from {{.Source}}.</p>
  <ul>
  {{- range .Entries}}
    <li><a href="{{.File}}">{{.Patient.Name}}</a> ({{.Patient.Diagnosis}})</li>
  {{- end}}
  </ul>
</body></html>
`

var (
	patientTmpl = template.Must(template.New("patient").Parse(patientTemplate))
	indexTmpl   = template.Must(template.New("index").Parse(indexTemplate))
)

type entry struct {
	File    string
	Patient models.Patient
}

// Render writes one HTML report per patient plus an index into a zip archive.
func Render(patients []models.Patient, source string, generated time.Time) ([]byte, error) {
	stamp := generated.Format("2006-01-02 15:04")

	entries := make([]entry, len(patients))
	for i, p := range patients {
		entries[i] = entry{File: reportFileName(i+1, p.Name), Patient: p}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		if err := writeEntry(zw, e.File, generated, patientTmpl, map[string]interface{}{
			"Patient":   e.Patient,
			"Source":    source,
			"Generated": stamp,
		}); err != nil {
			return nil, err
		}
	}

	if err := writeEntry(zw, IndexName, generated, indexTmpl, map[string]interface{}{
		"Entries":   entries,
		"Source":    source,
		"Generated": stamp,
	}); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, modified time.Time, tmpl *template.Template, data interface{}) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// reportFileName builds "patient_003_ada_lovelace.html".
func reportFileName(n int, name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" || name == models.MissingValue {
		slug = "unnamed"
	}
	return fmt.Sprintf("patient_%03d_%s.html", n, slug)
}
