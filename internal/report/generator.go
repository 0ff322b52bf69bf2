package report

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Result is a generated archive.
type Result struct {
	Archive  []byte
	Patients int
}

// Generator reads spreadsheets and renders report archives.
type Generator struct {
	log logrus.FieldLogger
	now func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(log logrus.FieldLogger) *Generator {
	return &Generator{log: log, now: time.Now}
}

// Generate reads the spreadsheet stored at path (originally named name)
// and renders its patients.
func (g *Generator) Generate(path, name string) (*Result, error) {
	patients, err := ReadPatients(path, name)
	if err != nil {
		return nil, err
	}

	archive, err := Render(patients, name, g.now())
	if err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"file":     name,
		"patients": len(patients),
		"bytes":    len(archive),
	}).Info("reports rendered")

	return &Result{Archive: archive, Patients: len(patients)}, nil
}
