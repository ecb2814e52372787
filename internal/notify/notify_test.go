package notify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/workitem"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       Kind
		persistent bool
	}{
		{"permission", fmt.Errorf("trash: %w", &docstore.PermissionError{Op: "update", Path: "workItems/a", Message: "read-only"}), KindPermission, true},
		{"validation", &workitem.ValidationError{Fields: []string{"status"}}, KindValidation, false},
		{"no rows", workitem.ErrNoValidRows, KindValidation, false},
		{"transition", fmt.Errorf("x: %w", workitem.ErrInvalidTransition), KindValidation, false},
		{"remote", errors.New("connection reset"), KindRemote, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FromError(tt.err)
			if n.Kind != tt.kind || n.Persistent != tt.persistent {
				t.Fatalf("notice = %+v, want kind %v persistent %v", n, tt.kind, tt.persistent)
			}
			if n.Message == "" || !n.IsError() {
				t.Fatalf("notice = %+v", n)
			}
		})
	}

	if n := FromError(nil); n.IsError() {
		t.Fatalf("nil error gave %+v", n)
	}
}
