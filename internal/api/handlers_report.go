// handlers_report.go - Spreadsheet upload and report archive download
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/medilink/reportgen/internal/report"
	"github.com/medilink/reportgen/internal/storage"
	"github.com/sirupsen/logrus"
)

// ArchiveName is the attachment filename suggested to clients.
const ArchiveName = "Patient_Reports.zip"

// ReportHandlerImpl implements the ReportHandler interface
type ReportHandlerImpl struct {
	store     storage.Store
	generator ReportGenerator
	log       logrus.FieldLogger
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(store storage.Store, generator ReportGenerator, log logrus.FieldLogger) ReportHandler {
	return &ReportHandlerImpl{
		store:     store,
		generator: generator,
		log:       log,
	}
}

// HandleUpload accepts a multipart "file" part and responds with the report archive
func (h *ReportHandlerImpl) HandleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", nil)
	}

	log := h.log.WithFields(logrus.Fields{
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"file":       file.Filename,
		"bytes":      file.Size,
	})

	src, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open uploaded file")
		return NewInternalError("failed to open uploaded file")
	}
	defer src.Close()

	info, err := h.store.Save(file.Filename, src)
	if err != nil {
		log.WithError(err).Error("failed to store upload")
		return NewInternalError("failed to save file")
	}
	defer func() {
		if err := h.store.Delete(info.ID); err != nil {
			log.WithError(err).Warn("failed to remove stored upload")
		}
	}()

	path, err := h.store.GetFilePath(info.ID)
	if err != nil {
		log.WithError(err).Error("stored upload vanished")
		return NewInternalError("failed to locate stored file")
	}

	h.setStatus(log, info.ID, storage.StatusGenerating)
	result, err := h.generator.Generate(path, file.Filename)
	if err != nil {
		h.setStatus(log, info.ID, storage.StatusError)
		log.WithError(err).Warn("report generation failed")
		return reportError(err)
	}
	h.setStatus(log, info.ID, storage.StatusGenerated)

	log.WithField("patients", result.Patients).Info("report archive sent")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, ArchiveName))
	return c.Blob(http.StatusOK, "application/zip", result.Archive)
}

func (h *ReportHandlerImpl) setStatus(log logrus.FieldLogger, id, status string) {
	if err := h.store.UpdateStatus(id, status); err != nil {
		log.WithError(err).Debug("status not recorded")
	}
}

// reportError maps generation failures to client-facing errors.
func reportError(err error) *APIError {
	var readErr *report.ReadError
	switch {
	case errors.Is(err, report.ErrUnsupportedFormat):
		return NewUnsupportedMediaTypeError(err.Error() + " (upload .xlsx or .csv)")
	case errors.Is(err, report.ErrNoPatients), errors.Is(err, report.ErrMissingColumn):
		return NewUnprocessableError("invalid spreadsheet", err)
	case errors.As(err, &readErr):
		return NewUnprocessableError("could not read spreadsheet", readErr.Err)
	default:
		return NewInternalError("failed to generate report")
	}
}
