package help

import (
	"strings"
	"testing"

	"github.com/nhle/workdesk/internal/keys"
)

func TestViewListsSectionsAndEditMode(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 60)

	out := m.View()
	for _, want := range []string{"Keyboard Shortcuts", "Selection", "Registry", "manage options", "Edit mode is off"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.SetEditMode(true)
	if !strings.Contains(m.View(), "Edit mode is on") {
		t.Error("edit mode not shown as on")
	}
}
