// Package notify turns operation errors into user-facing notices.
package notify

import (
	"errors"
	"fmt"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/workitem"
)

// Kind classifies a notice.
type Kind int

const (
	KindInfo Kind = iota
	KindValidation
	KindRemote
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindPermission:
		return "permission"
	default:
		return "info"
	}
}

// Notice is a message for the status bar or API client.
type Notice struct {
	Kind    Kind
	Message string

	// Persistent notices stay until dismissed.
	Persistent bool
}

// IsError reports whether the notice reports a failure.
func (n Notice) IsError() bool {
	return n.Kind != KindInfo
}

// Info builds a transient informational notice.
func Info(format string, args ...any) Notice {
	return Notice{Kind: KindInfo, Message: fmt.Sprintf(format, args...)}
}

// FromError classifies err. Permission problems get a persistent notice
// that points at configuration; other failures are transient.
func FromError(err error) Notice {
	switch {
	case err == nil:
		return Notice{}
	case docstore.IsPermissionError(err):
		return Notice{
			Kind: KindPermission,
			Message: "The document store rejected access. Check store.read_only and the " +
				"database file permissions, then retry. (" + err.Error() + ")",
			Persistent: true,
		}
	case workitem.IsValidation(err):
		return Notice{Kind: KindValidation, Message: err.Error()}
	case errors.Is(err, workitem.ErrInvalidTransition), errors.Is(err, docstore.ErrNotFound):
		return Notice{Kind: KindValidation, Message: err.Error()}
	default:
		return Notice{Kind: KindRemote, Message: "Write failed: " + err.Error()}
	}
}
