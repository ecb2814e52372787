package workitem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/workdesk/internal/model"
)

// Import columns, in order. The serial number is ignored.
const (
	colSerial = iota
	colDate
	colWorkBy
	colWorkType
	colStatus
	colCustomerName
	colTrackingNumber
	colCustomerNumber
	colSalesPrice
	colAdvance

	importColumns
)

var importDateLayouts = []string{
	model.DateLayout,
	"1/2/2006",
	"2-Jan-2006",
	"2 Jan 2006",
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Imported int
	Skipped  int
	IDs      []string
}

// ParseImport parses tab-separated text. The first line is a header and is
// discarded; blank lines are ignored. A line with fewer than ten fields or
// without a date, work type, status or customer name is skipped.
func ParseImport(text string) (items []model.WorkItem, skipped int) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, ok := parseImportLine(line)
		if !ok {
			skipped++
			continue
		}
		items = append(items, w)
	}
	return items, skipped
}

func parseImportLine(line string) (model.WorkItem, bool) {
	cols := strings.Split(strings.TrimRight(line, "\r"), "\t")
	if len(cols) < importColumns {
		return model.WorkItem{}, false
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	w := model.WorkItem{
		DateOfWork:           parseImportDate(cols[colDate]),
		WorkBy:               cols[colWorkBy],
		WorkOfType:           cols[colWorkType],
		Status:               cols[colStatus],
		CustomerName:         cols[colCustomerName],
		TrackingNumber:       cols[colTrackingNumber],
		MobileWhatsappNumber: cols[colCustomerNumber],
		SalesPrice:           parseImportAmount(cols[colSalesPrice]),
		Advance:              parseImportAmount(cols[colAdvance]),
	}
	if InputFrom(w).Validate() != nil {
		return model.WorkItem{}, false
	}
	w.RecomputeDue()
	return w, true
}

func parseImportDate(s string) time.Time {
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseImportAmount(s string) float64 {
	n, err := model.ParseAmount(s)
	if err != nil {
		return 0
	}
	return n
}

// Import inserts every valid row of text in one batch, then unions the
// categorical values it found into the option registry in one update.
func (s *Service) Import(ctx context.Context, text string) (ImportResult, error) {
	items, skipped := ParseImport(text)
	result := ImportResult{Skipped: skipped}
	if len(items) == 0 {
		s.log.BusinessError("import rejected", ErrNoValidRows, "skipped", skipped)
		return result, ErrNoValidRows
	}

	batch := s.docs.Batch()
	var seen model.Options
	ids := make([]string, 0, len(items))
	for _, w := range items {
		ids = append(ids, batch.Add(model.WorkItemsCollection, w.Fields()))
		seen = seen.Union(model.ItemOptions(w))
	}
	if err := batch.Commit(ctx); err != nil {
		s.log.InternalError("import failed", err, "rows", len(items))
		return result, fmt.Errorf("importing %d rows: %w", len(items), err)
	}

	result.Imported = len(items)
	result.IDs = ids
	s.log.Info("work items imported", "imported", result.Imported, "skipped", result.Skipped)

	if err := s.register(ctx, seen); err != nil {
		return result, err
	}
	return result, nil
}
