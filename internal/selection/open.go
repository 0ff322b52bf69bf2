package selection

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/medilink/reportgen/internal/models"
)

// AcceptedExtensions is the file-dialog filter for spreadsheet selection.
// It is advisory: Open does not reject other extensions.
var AcceptedExtensions = []string{".xlsx", ".xls", ".csv"}

var mediaTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".csv":  "text/csv",
}

// Accepted reports whether name carries one of AcceptedExtensions.
func Accepted(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// MediaTypeFor returns the declared media type for a file name.
func MediaTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := mediaTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

// Open reads path into a SelectedFile named after its base name.
func Open(path string) (*models.SelectedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	return &models.SelectedFile{
		Name:      name,
		Content:   content,
		MediaType: MediaTypeFor(name),
	}, nil
}
