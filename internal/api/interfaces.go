// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/medilink/reportgen/internal/report"
)

// ReportHandler handles spreadsheet upload and report generation
type ReportHandler interface {
	HandleUpload(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// ReportGenerator renders a stored spreadsheet into an archive.
// This allows mocking in tests
type ReportGenerator interface {
	Generate(path, name string) (*report.Result, error)
}
