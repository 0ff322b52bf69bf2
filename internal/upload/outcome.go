package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultArchiveName is the filename given to every downloaded archive.
// Server filename hints are not consumed.
const DefaultArchiveName = "Patient_Reports.zip"

// OpaqueDescription summarises failures whose body is not JSON.
const OpaqueDescription = "Server error while generating report"

// Outcome is the classified result of one submission.
// Implementations: *BinaryPayload, *StructuredError, *OpaqueError, *NetworkError, *SaveError.
type Outcome interface {
	Failed() bool
	// Cause is the human-readable reason for a failure, empty on success.
	Cause() string
	isOutcome()
}

// BinaryPayload is a successful response carrying the archive.
type BinaryPayload struct {
	Bytes             []byte
	SuggestedFilename string
	ContentType       string
	// SavedPath is set once the archive has been written locally.
	SavedPath string
}

// StructuredError is a failure response with a JSON body.
type StructuredError struct {
	StatusCode int
	Detail     string
}

// OpaqueError is a failure response with a non-JSON body. The body is not read.
type OpaqueError struct {
	StatusCode        int
	StatusDescription string
}

// NetworkError is a failure before any usable response was received.
type NetworkError struct {
	Err error
}

// SaveError is a successful response whose archive could not be saved locally.
type SaveError struct {
	Filename string
	Err      error
}

func (*BinaryPayload) isOutcome()   {}
func (*StructuredError) isOutcome() {}
func (*OpaqueError) isOutcome()     {}
func (*NetworkError) isOutcome()    {}
func (*SaveError) isOutcome()       {}

func (*BinaryPayload) Failed() bool   { return false }
func (*StructuredError) Failed() bool { return true }
func (*OpaqueError) Failed() bool     { return true }
func (*NetworkError) Failed() bool    { return true }
func (*SaveError) Failed() bool       { return true }

func (*BinaryPayload) Cause() string     { return "" }
func (e *StructuredError) Cause() string { return e.Detail }
func (e *OpaqueError) Cause() string     { return e.StatusDescription }
func (e *NetworkError) Cause() string    { return fmt.Sprintf("network error: %v", e.Err) }
func (e *SaveError) Cause() string {
	return fmt.Sprintf("could not save %s: %v", e.Filename, e.Err)
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

func (e *OpaqueError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.StatusDescription)
}

func (e *NetworkError) Error() string { return e.Cause() }
func (e *NetworkError) Unwrap() error { return e.Err }

func (e *SaveError) Error() string { return e.Cause() }
func (e *SaveError) Unwrap() error { return e.Err }

// classify turns a response into exactly one Outcome. The caller closes the body.
func classify(resp *http.Response) Outcome {
	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !isJSON(contentType) {
			return &OpaqueError{StatusCode: resp.StatusCode, StatusDescription: OpaqueDescription}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &NetworkError{Err: fmt.Errorf("reading error response: %w", err)}
		}
		detail, err := extractDetail(body)
		if err != nil {
			// Declared JSON but unparseable: treat as unstructured
			return &OpaqueError{StatusCode: resp.StatusCode, StatusDescription: OpaqueDescription}
		}
		return &StructuredError{StatusCode: resp.StatusCode, Detail: detail}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("reading archive: %w", err)}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &BinaryPayload{
		Bytes:             body,
		SuggestedFilename: DefaultArchiveName,
		ContentType:       contentType,
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// extractDetail picks "detail", then "error", then the compacted body.
func extractDetail(body []byte) (string, error) {
	body = bytes.TrimSpace(body)

	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	if obj, ok := parsed.(map[string]interface{}); ok {
		for _, key := range []string{"detail", "error"} {
			if text, ok := describe(obj[key]); ok {
				return text, nil
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return "", err
	}
	return compact.String(), nil
}

// describe renders a present, non-empty JSON value as text.
func describe(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
	case float64:
		if val == 0 {
			return "", false
		}
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
