package models

// SelectedFile is a locally chosen file awaiting submission.
// It is replaced, never mutated, when the user picks another file.
type SelectedFile struct {
	Name      string
	Content   []byte
	MediaType string
}

// Size returns the content length in bytes.
func (f *SelectedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Content))
}
