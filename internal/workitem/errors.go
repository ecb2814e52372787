package workitem

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidTransition is returned when an item's lifecycle state does
	// not allow the requested operation.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrEmptySelection is returned by bulk operations given no ids.
	ErrEmptySelection = errors.New("no items selected")

	// ErrNoValidRows is returned when an import contains nothing to insert.
	ErrNoValidRows = errors.New("no valid rows to import")
)

// ValidationError lists the required fields a save was missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err was raised before any remote call
// because the input was unusable.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrNoValidRows) ||
		errors.Is(err, ErrEmptySelection)
}
