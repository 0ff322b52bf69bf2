package upload

import "errors"

// ErrNoFileSelected is returned by Submit when nothing is selected.
// No request is issued and the phase does not change.
var ErrNoFileSelected = errors.New("please select an Excel (.xlsx) file first")

// ErrSubmissionInFlight is returned by Submit while another submission is running.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")
