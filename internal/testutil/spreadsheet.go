package testutil

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// PatientHeader is the column layout of the reference patient spreadsheet.
var PatientHeader = []string{"name", "age", "sex", "blood_type", "diagnosis", "notes", "test_date"}

// BuildWorkbook returns an .xlsx file whose first sheet holds rows verbatim.
func BuildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// HeaderRow returns PatientHeader as a workbook row.
func HeaderRow() []interface{} {
	row := make([]interface{}, len(PatientHeader))
	for i, h := range PatientHeader {
		row[i] = h
	}
	return row
}
