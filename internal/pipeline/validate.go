package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError rejects a submission before any network call is made.
// The pipeline stays idle when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// mimeByExt maps the accepted video extensions to the MIME types the
// upload allowlist is expressed in. Deliberately not mime.TypeByExtension:
// the mapping must not vary by platform.
var mimeByExt = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

func (c *Coordinator) validateFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeByExt[ext]
	if !ok || !c.upload.AllowsType(mime) {
		return &ValidationError{Reason: fmt.Sprintf("unsupported file type %q: use MP4, MOV, or WebM", ext)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	if info.IsDir() {
		return &ValidationError{Reason: fmt.Sprintf("%s is a directory", path)}
	}
	if c.upload.MaxBytes > 0 && info.Size() > c.upload.MaxBytes {
		return &ValidationError{Reason: fmt.Sprintf(
			"file too large: %d bytes (limit %d)", info.Size(), c.upload.MaxBytes)}
	}
	return nil
}
