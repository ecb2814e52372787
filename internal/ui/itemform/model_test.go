package itemform

import (
	"testing"
	"time"

	"github.com/nhle/workdesk/internal/model"
)

func TestStartEditCopiesFields(t *testing.T) {
	m := New(80, 24)
	m.SetOptions(model.DefaultOptions())

	w := model.WorkItem{
		ID:           "a",
		DateOfWork:   time.Date(2024, 3, 9, 10, 15, 0, 0, time.Local),
		WorkBy:       "Office",
		WorkOfType:   "Visa",
		Status:       "Custom",
		CustomerName: "Rahim",
		SalesPrice:   1500,
		Advance:      500,
	}
	m.StartEdit(w)

	if m.fb.date != "2024-03-09" {
		t.Errorf("date = %q", m.fb.date)
	}
	if m.fb.salesPrice != "1500" || m.fb.advance != "500" {
		t.Errorf("amounts = %q, %q", m.fb.salesPrice, m.fb.advance)
	}
	if got := m.dueText(); got != "1,000.00" {
		t.Errorf("due preview = %q", got)
	}

	in := m.input()
	if in.Status != "Custom" || in.CustomerName != "Rahim" {
		t.Errorf("input = %+v", in)
	}
	if in.DateOfWork.Year() != 2024 || in.DateOfWork.Day() != 9 {
		t.Errorf("date of work = %v", in.DateOfWork)
	}
}

func TestStartCreateDefaults(t *testing.T) {
	m := New(80, 24)
	m.SetOptions(model.DefaultOptions())
	m.StartCreate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local))

	if m.fb.date != "2024-05-01" {
		t.Errorf("date = %q", m.fb.date)
	}
	if m.fb.status != model.StatusUnderProcessing {
		t.Errorf("status = %q", m.fb.status)
	}
	if m.fb.workBy != "Office" {
		t.Errorf("work by = %q", m.fb.workBy)
	}
	if m.dueText() != "0.00" {
		t.Errorf("due preview = %q", m.dueText())
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		input   string
		wantErr bool
	}{
		{"date ok", validateDate, "2024-01-31", false},
		{"date empty", validateDate, " ", true},
		{"date bad", validateDate, "31/01/2024", true},
		{"amount empty", validateAmount, "", false},
		{"amount commas", validateAmount, "1,200.50", false},
		{"amount text", validateAmount, "abc", true},
		{"required", validateRequired("Name"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
