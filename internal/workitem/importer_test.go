package workitem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/workdesk/internal/workitem"
)

const importHeader = "SL\tDate\tWork By\tType\tStatus\tName\tTracking\tNumber\tSales\tAdvance"

func TestParseImport(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantItems   int
		wantSkipped int
	}{
		{
			name:      "single row",
			text:      importHeader + "\n1\t2024-01-05\tAlice\tVisa\tApproved\tBob Smith\tTRK1\t+15551234567\t1000\t400",
			wantItems: 1,
		},
		{
			name:        "too few fields",
			text:        importHeader + "\n1\t2024-01-05\tAlice\tVisa\tApproved",
			wantSkipped: 1,
		},
		{
			name:        "missing customer",
			text:        importHeader + "\n1\t2024-01-05\tAlice\tVisa\tApproved\t\tTRK1\t+1555\t1000\t400",
			wantSkipped: 1,
		},
		{
			name:        "bad date",
			text:        importHeader + "\n1\tsoon\tAlice\tVisa\tApproved\tBob\tTRK1\t+1555\t1000\t400",
			wantSkipped: 1,
		},
		{
			name:      "header only",
			text:      importHeader,
			wantItems: 0,
		},
		{
			name:      "crlf and blank lines",
			text:      importHeader + "\r\n\r\n2\t1/5/2024\t\tPassport Renewal\tRejected\tAnn\t\t\t1,200\t200\r\n",
			wantItems: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, skipped := workitem.ParseImport(tt.text)
			if len(items) != tt.wantItems || skipped != tt.wantSkipped {
				t.Fatalf("items=%d skipped=%d, want %d/%d", len(items), skipped, tt.wantItems, tt.wantSkipped)
			}
		})
	}
}

func TestParseImportColumns(t *testing.T) {
	items, _ := workitem.ParseImport(importHeader + "\n2\t1/5/2024\t\tPassport Renewal\tRejected\tAnn\tT9\t0170\t1,200\t200")
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	w := items[0]
	if w.DateOfWork.Month() != 1 || w.DateOfWork.Day() != 5 || w.DateOfWork.Year() != 2024 {
		t.Errorf("date = %v", w.DateOfWork)
	}
	if w.TrackingNumber != "T9" || w.MobileWhatsappNumber != "0170" {
		t.Errorf("tracking=%q mobile=%q", w.TrackingNumber, w.MobileWhatsappNumber)
	}
	if w.SalesPrice != 1200 || w.Due != 1000 {
		t.Errorf("sales=%v due=%v", w.SalesPrice, w.Due)
	}
}

func TestImportInsertsRowsWithDefaults(t *testing.T) {
	ctx := context.Background()
	svc, docs, reg := newService(t)

	text := importHeader + "\n1\t2024-01-05\tAlice\tVisa\tApproved\tBob Smith\tTRK1\t+15551234567\t1000\t400"
	res, err := svc.Import(ctx, text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 0 || len(res.IDs) != 1 {
		t.Fatalf("result = %+v", res)
	}

	w := loadItem(t, docs, res.IDs[0])
	if w.Due != 600 || w.IsArchived || w.IsTrashed || w.CustomerCalled {
		t.Fatalf("imported item = %+v", w)
	}
	if w.CustomerName != "Bob Smith" || w.WorkBy != "Alice" {
		t.Fatalf("imported item = %+v", w)
	}
	if !contains(reg.Options().WorkBy, "Alice") {
		t.Fatal("import did not register work-by value")
	}
}

func TestImportNoValidRows(t *testing.T) {
	svc, _, _ := newService(t)
	res, err := svc.Import(context.Background(), importHeader+"\nbad line")
	if !errors.Is(err, workitem.ErrNoValidRows) {
		t.Fatalf("err = %v, want ErrNoValidRows", err)
	}
	if res.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", res.Skipped)
	}
}
