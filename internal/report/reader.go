// Package report turns a patient spreadsheet into an archive of per-patient reports.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/medilink/reportgen/internal/models"
	"github.com/xuri/excelize/v2"
)

// requiredColumns must appear in the header row.
var requiredColumns = []string{"name"}

// ReadPatients reads the spreadsheet at path. name is the original file name
// and selects the format by extension.
func ReadPatients(path, name string) ([]models.Patient, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &ReadError{File: name, Err: err}
	}

	return toPatients(rows)
}

// readWorkbook returns the rows of the first sheet.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// normalizeHeader maps "Blood Type" and "blood-type" to "blood_type".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// toPatients maps rows to patients using the first non-empty row as the header.
func toPatients(rows [][]string) ([]models.Patient, error) {
	headerIdx := -1
	for i, row := range rows {
		if !blank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoPatients
	}

	columns := make(map[string]int)
	for i, h := range rows[headerIdx] {
		if key := normalizeHeader(h); key != "" {
			if _, dup := columns[key]; !dup {
				columns[key] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(row []string, key string) string {
		i, ok := columns[key]
		if !ok || i >= len(row) {
			return models.MissingValue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
		return models.MissingValue
	}

	var patients []models.Patient
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		patients = append(patients, models.Patient{
			Row:       i + 1,
			Name:      cell(row, "name"),
			Age:       cell(row, "age"),
			Sex:       cell(row, "sex"),
			BloodType: cell(row, "blood_type"),
			Diagnosis: cell(row, "diagnosis"),
			Notes:     cell(row, "notes"),
			TestDate:  cell(row, "test_date"),
		})
	}

	if len(patients) == 0 {
		return nil, ErrNoPatients
	}
	return patients, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
