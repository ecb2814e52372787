package docstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned for reads and updates of missing documents.
var ErrNotFound = errors.New("document not found")

// PermissionError indicates the store's access rules rejected an operation.
// It reflects configuration rather than a transient fault.
type PermissionError struct {
	Op      string
	Path    string
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied (%s %s): %s", e.Op, e.Path, e.Message)
}

// IsPermissionError reports whether err (or any error in its chain) is a PermissionError.
func IsPermissionError(err error) bool {
	var permErr *PermissionError
	return errors.As(err, &permErr)
}

// classifyWriteError converts SQLite read-only failures into permission errors.
func classifyWriteError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "readonly") || strings.Contains(msg, "read-only") {
		return &PermissionError{Op: op, Path: path, Message: err.Error()}
	}
	return err
}
