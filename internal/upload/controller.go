// Package upload submits a selected spreadsheet to the report endpoint and
// turns the response into either a saved archive or a status message.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"

	"github.com/medilink/reportgen/internal/download"
	"github.com/medilink/reportgen/internal/models"
	"github.com/medilink/reportgen/internal/selection"
	"github.com/sirupsen/logrus"
)

// FieldName is the multipart part carrying the spreadsheet.
const FieldName = "file"

// Status messages written to the selection state.
const (
	MessageGenerating = "Generating report..."
	MessageSuccess    = "Report generated successfully ✅"
	messageFailure    = "Failed to generate report: "
)

// FailureMessage formats the status line for a failed outcome.
func FailureMessage(o Outcome) string {
	return messageFailure + o.Cause()
}

// HTTPDoer is the transport used to issue the request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Controller runs the submission lifecycle.
type Controller struct {
	endpoint string
	client   HTTPDoer
	saver    download.Saver
	log      logrus.FieldLogger

	mu             sync.Mutex
	phase          Phase
	phaseObservers []func(Phase)
}

// NewController creates a Controller posting to endpoint.
func NewController(endpoint string, client HTTPDoer, saver download.Saver, log logrus.FieldLogger) *Controller {
	if client == nil {
		client = http.DefaultClient
	}
	return &Controller{
		endpoint: endpoint,
		client:   client,
		saver:    saver,
		log:      log,
		phase:    PhaseIdle,
	}
}

// Submit uploads the selected file and records the result in sel.
//
// The only error returned is a precondition failure (ErrNoFileSelected,
// ErrSubmissionInFlight); every other failure is reported through the
// returned Outcome and the status message. The phase is Idle again when
// Submit returns, whatever happened.
func (c *Controller) Submit(ctx context.Context, sel *selection.State) (Outcome, error) {
	file := sel.CurrentFile()
	if file == nil {
		return nil, ErrNoFileSelected
	}

	release, err := c.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	sel.SetMessage(MessageGenerating)

	log := c.log.WithFields(logrus.Fields{
		"file":  file.Name,
		"bytes": file.Size(),
	})
	log.Info("submitting spreadsheet")

	outcome := c.exchange(ctx, file)
	outcome = c.settle(sel, outcome)

	if outcome.Failed() {
		log.WithField("outcome", fmt.Sprintf("%T", outcome)).Warn(outcome.Cause())
	} else {
		log.Info("report generated")
	}

	return outcome, nil
}

// exchange issues the request and classifies the response.
func (c *Controller) exchange(ctx context.Context, file *models.SelectedFile) Outcome {
	body, contentType, err := buildPayload(file)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("building request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"status":       resp.StatusCode,
		"content_type": resp.Header.Get("Content-Type"),
	}).Debug("response received")

	return classify(resp)
}

// settle performs the single side effect for an outcome: save or message.
func (c *Controller) settle(sel *selection.State, outcome Outcome) Outcome {
	switch o := outcome.(type) {
	case *BinaryPayload:
		path, err := c.saver.Save(download.Artifact{
			Name:        o.SuggestedFilename,
			ContentType: o.ContentType,
			Data:        o.Bytes,
		})
		if err != nil {
			failed := &SaveError{Filename: o.SuggestedFilename, Err: err}
			sel.SetMessage(FailureMessage(failed))
			return failed
		}
		o.SavedPath = path
		sel.SetMessage(MessageSuccess)
	case *StructuredError, *OpaqueError, *NetworkError, *SaveError:
		sel.SetMessage(FailureMessage(o))
	default:
		sel.SetMessage(FailureMessage(outcome))
	}
	return outcome
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildPayload encodes file as a single-part multipart form.
func buildPayload(file *models.SelectedFile) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldName, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
