package models

// MissingValue replaces empty spreadsheet cells in rendered reports.
const MissingValue = "N/A"

// Patient is one spreadsheet row rendered into a report.
type Patient struct {
	Row       int    `json:"row"` // 1-based spreadsheet row
	Name      string `json:"name"`
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	BloodType string `json:"blood_type"`
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
	TestDate  string `json:"test_date"`
}
