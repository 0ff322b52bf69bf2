package testutil

import (
	"sync"

	"github.com/medilink/reportgen/internal/download"
)

// RecordingSaver implements download.Saver by keeping every artifact in memory.
type RecordingSaver struct {
	mu    sync.Mutex
	saved []download.Artifact

	// Err, when set, is returned by Save and nothing is recorded.
	Err error
	// Hook, when set, runs at the start of Save.
	Hook func(download.Artifact)
}

func (r *RecordingSaver) Save(a download.Artifact) (string, error) {
	if r.Hook != nil {
		r.Hook(a)
	}
	if r.Err != nil {
		return "", r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, a)
	return "/mock/downloads/" + a.Name, nil
}

// Saved returns a copy of the recorded artifacts
func (r *RecordingSaver) Saved() []download.Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]download.Artifact(nil), r.saved...)
}

var _ download.Saver = (*RecordingSaver)(nil)
