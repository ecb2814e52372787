package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestComputeDue(t *testing.T) {
	w := WorkItem{SalesPrice: 500, Advance: 200}
	w.RecomputeDue()
	if w.Due != 300 {
		t.Fatalf("expected due 300, got %v", w.Due)
	}

	w.Advance = 500
	w.RecomputeDue()
	if w.Due != 0 {
		t.Fatalf("expected due 0, got %v", w.Due)
	}
}

func TestLifecycleTrashDominatesArchive(t *testing.T) {
	tests := []struct {
		name string
		item WorkItem
		want Lifecycle
	}{
		{"active", WorkItem{}, LifecycleActive},
		{"archived", WorkItem{IsArchived: true}, LifecycleArchived},
		{"trashed", WorkItem{IsTrashed: true}, LifecycleTrashed},
		{"both", WorkItem{IsArchived: true, IsTrashed: true}, LifecycleTrashed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Lifecycle(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDayCount(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"no date", time.Time{}, 0},
		{"same day later clock", time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local), 0},
		{"yesterday late", time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local), 1},
		{"ten days", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), 10},
		{"future floors at zero", time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WorkItem{DateOfWork: tt.date}
			if got := w.DayCount(now); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDaysUntilPurge(t *testing.T) {
	trashed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	w := WorkItem{IsTrashed: true, TrashedAt: &trashed}

	if got := w.DaysUntilPurge(trashed.Add(24 * time.Hour)); got != 29 {
		t.Errorf("expected 29 days left, got %d", got)
	}
	if got := w.DaysUntilPurge(trashed.Add(40 * 24 * time.Hour)); got != 0 {
		t.Errorf("expected 0 days left, got %d", got)
	}
	if got := (WorkItem{}).DaysUntilPurge(trashed); got != 0 {
		t.Errorf("expected 0 for untrashed item, got %d", got)
	}
}

func TestDateOfWorkEncoding(t *testing.T) {
	dateOnly := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	if got := FormatDateOfWork(dateOnly); got != "2024-01-05" {
		t.Errorf("expected date-only encoding, got %q", got)
	}

	withClock := time.Date(2024, 1, 5, 14, 3, 9, 0, time.Local)
	encoded := FormatDateOfWork(withClock)
	if encoded != "2024-01-05T14:03:09" {
		t.Errorf("expected date-time encoding, got %q", encoded)
	}
	if got := ParseDateOfWork(encoded); !got.Equal(withClock) {
		t.Errorf("round trip mismatch: %v != %v", got, withClock)
	}
	if got := ParseDateOfWork("2024-01-05T14:03"); !HasTimeOfDay(got) {
		t.Errorf("expected time-of-day from minute layout, got %v", got)
	}
	if got := ParseDateOfWork("not a date"); !got.IsZero() {
		t.Errorf("expected zero time, got %v", got)
	}
}

func TestWorkItemFromFieldsDefaults(t *testing.T) {
	w := WorkItemFromFields("doc-1", map[string]any{
		FieldCustomerName: "Bob",
		FieldSalesPrice:   "1,000",
		FieldAdvance:      float64(400),
		FieldIsArchived:   "yes",
		FieldTrashedAt:    "2024-01-01T00:00:00Z",
	})

	if w.ID != "doc-1" || w.CustomerName != "Bob" {
		t.Fatalf("unexpected identity fields: %+v", w)
	}
	if w.SalesPrice != 1000 || w.Advance != 400 {
		t.Errorf("unexpected amounts: %v %v", w.SalesPrice, w.Advance)
	}
	if w.PassportNumber != "" || w.Status != "" {
		t.Errorf("expected empty defaults, got %+v", w)
	}
	if w.IsArchived || w.IsTrashed || w.CustomerCalled {
		t.Errorf("expected false flags, got %+v", w)
	}
	if w.TrashedAt != nil {
		t.Errorf("trashedAt must be absent on an untrashed item")
	}
	if w.HasDate() {
		t.Errorf("expected no date")
	}
}

func TestWorkItemFieldsRoundTrip(t *testing.T) {
	trashed := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	in := WorkItem{
		DateOfWork:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		CustomerName: "Bob Smith",
		SalesPrice:   1000,
		Advance:      400,
		Due:          600,
		IsTrashed:    true,
		TrashedAt:    &trashed,
	}
	out := WorkItemFromFields("x", in.Fields())
	if !out.DateOfWork.Equal(in.DateOfWork) || out.Due != 600 || !out.IsTrashed {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.TrashedAt == nil || !out.TrashedAt.Equal(trashed) {
		t.Fatalf("expected trashedAt %v, got %v", trashed, out.TrashedAt)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	prefs, err := LoadPreferences(path)
	if err != nil {
		t.Fatalf("loading missing preferences: %v", err)
	}
	if prefs.FontSize != DefaultFontSize || prefs.Authenticated {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}

	prefs.Authenticated = true
	prefs.EditMode = true
	prefs.Theme = "light"
	prefs.FontSize = 18
	if err := SavePreferences(path, prefs); err != nil {
		t.Fatalf("saving preferences: %v", err)
	}

	got, err := LoadPreferences(path)
	if err != nil {
		t.Fatalf("reloading preferences: %v", err)
	}
	if got != prefs {
		t.Fatalf("expected %+v, got %+v", prefs, got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Display.PageSize != DefaultPageSize {
		t.Errorf("expected page size %d, got %d", DefaultPageSize, cfg.Display.PageSize)
	}
	if cfg.Auth.Username == "" {
		t.Errorf("expected a default username")
	}
}
