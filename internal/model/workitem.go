package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Document field names for work items.
const (
	FieldDateOfWork     = "dateOfWork"
	FieldWorkBy         = "workBy"
	FieldWorkOfType     = "workOfType"
	FieldStatus         = "status"
	FieldCustomerName   = "customerName"
	FieldPassportNumber = "passportNumber"
	FieldTrackingNumber = "trackingNumber"
	FieldMobileNumber   = "mobileWhatsappNumber"
	FieldSalesPrice     = "salesPrice"
	FieldAdvance        = "advance"
	FieldDue            = "due"
	FieldIsArchived     = "isArchived"
	FieldIsTrashed      = "isTrashed"
	FieldTrashedAt      = "trashedAt"
	FieldCustomerCalled = "customerCalled"
)

// WorkItemsCollection is the document collection holding work items.
const WorkItemsCollection = "workItems"

// TrashRetention is how long a trashed item is kept before the external
// purge job removes it.
const TrashRetention = 30 * 24 * time.Hour

// Date encodings used for dateOfWork. A date without a time-of-day is
// stored in DateLayout.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Lifecycle is the derived lifecycle state of a work item.
type Lifecycle int

const (
	LifecycleActive Lifecycle = iota
	LifecycleArchived
	LifecycleTrashed
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleArchived:
		return "archived"
	case LifecycleTrashed:
		return "trashed"
	default:
		return "active"
	}
}

// WorkItem is a unit of work tracked through the active, archived and
// trashed lifecycle.
type WorkItem struct {
	ID string `json:"id"`

	// DateOfWork is the zero time when the document carries no date.
	DateOfWork time.Time `json:"dateOfWork"`

	WorkBy     string `json:"workBy"`
	WorkOfType string `json:"workOfType"`
	Status     string `json:"status"`

	CustomerName         string `json:"customerName"`
	PassportNumber       string `json:"passportNumber"`
	TrackingNumber       string `json:"trackingNumber"`
	MobileWhatsappNumber string `json:"mobileWhatsappNumber"`

	SalesPrice float64 `json:"salesPrice"`
	Advance    float64 `json:"advance"`

	// Due is persisted but always derived from SalesPrice and Advance.
	Due float64 `json:"due"`

	IsArchived     bool `json:"isArchived"`
	IsTrashed      bool `json:"isTrashed"`
	CustomerCalled bool `json:"customerCalled"`

	// TrashedAt is set only while IsTrashed is true.
	TrashedAt *time.Time `json:"trashedAt,omitempty"`
}

// ComputeDue returns salesPrice minus advance.
func ComputeDue(salesPrice, advance float64) float64 {
	return salesPrice - advance
}

// RecomputeDue refreshes Due from the price fields.
func (w *WorkItem) RecomputeDue() {
	w.Due = ComputeDue(w.SalesPrice, w.Advance)
}

// Lifecycle reports the item's lifecycle state. Trashed dominates archived.
func (w WorkItem) Lifecycle() Lifecycle {
	switch {
	case w.IsTrashed:
		return LifecycleTrashed
	case w.IsArchived:
		return LifecycleArchived
	default:
		return LifecycleActive
	}
}

// HasDate reports whether the item carries a date of work.
func (w WorkItem) HasDate() bool {
	return !w.DateOfWork.IsZero()
}

// DayCount returns the whole days elapsed between the local calendar day of
// DateOfWork and the local calendar day of now, floored at zero.
func (w WorkItem) DayCount(now time.Time) int {
	if !w.HasDate() {
		return 0
	}
	return CalendarDaysBetween(w.DateOfWork, now)
}

// PurgeAt returns when the retention window for a trashed item ends.
func (w WorkItem) PurgeAt() (time.Time, bool) {
	if !w.IsTrashed || w.TrashedAt == nil {
		return time.Time{}, false
	}
	return w.TrashedAt.Add(TrashRetention), true
}

// DaysUntilPurge returns the whole days left in the retention window,
// floored at zero. It is display-only.
func (w WorkItem) DaysUntilPurge(now time.Time) int {
	at, ok := w.PurgeAt()
	if !ok {
		return 0
	}
	left := at.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// CalendarDaysBetween counts local midnights crossed from a to b. It never
// returns a negative number.
func CalendarDaysBetween(a, b time.Time) int {
	a = a.Local()
	b = b.Local()
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(db.Sub(da).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// HasTimeOfDay reports whether t carries a clock component.
func HasTimeOfDay(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	h, m, s := t.Clock()
	return h != 0 || m != 0 || s != 0
}

// DateOnly truncates t to local midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// WithTimeOfDay returns the calendar day of date combined with the clock of clock.
func WithTimeOfDay(date, clock time.Time) time.Time {
	date = date.Local()
	clock = clock.Local()
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local)
}

// FormatDateOfWork encodes a date of work for storage.
func FormatDateOfWork(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if HasTimeOfDay(t) {
		return t.Local().Format(DateTimeLayout)
	}
	return t.Local().Format(DateLayout)
}

var dateOfWorkLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04",
	DateLayout,
}

// ParseDateOfWork decodes a stored date of work. Unknown encodings yield
// the zero time.
func ParseDateOfWork(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local()
	}
	for _, layout := range dateOfWorkLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Fields encodes the item as a document field map. The id is not part of
// the document body.
func (w WorkItem) Fields() map[string]any {
	f := map[string]any{
		FieldDateOfWork:     FormatDateOfWork(w.DateOfWork),
		FieldWorkBy:         w.WorkBy,
		FieldWorkOfType:     w.WorkOfType,
		FieldStatus:         w.Status,
		FieldCustomerName:   w.CustomerName,
		FieldPassportNumber: w.PassportNumber,
		FieldTrackingNumber: w.TrackingNumber,
		FieldMobileNumber:   w.MobileWhatsappNumber,
		FieldSalesPrice:     w.SalesPrice,
		FieldAdvance:        w.Advance,
		FieldDue:            w.Due,
		FieldIsArchived:     w.IsArchived,
		FieldIsTrashed:      w.IsTrashed,
		FieldCustomerCalled: w.CustomerCalled,
	}
	if w.TrashedAt != nil {
		f[FieldTrashedAt] = w.TrashedAt.UTC().Format(time.RFC3339Nano)
	}
	return f
}

// WorkItemFromFields decodes a document. Missing or malformed fields fall
// back to their zero defaults; decoding never fails.
func WorkItemFromFields(id string, f map[string]any) WorkItem {
	w := WorkItem{
		ID:                   id,
		DateOfWork:           ParseDateOfWork(StringField(f, FieldDateOfWork)),
		WorkBy:               StringField(f, FieldWorkBy),
		WorkOfType:           StringField(f, FieldWorkOfType),
		Status:               StringField(f, FieldStatus),
		CustomerName:         StringField(f, FieldCustomerName),
		PassportNumber:       StringField(f, FieldPassportNumber),
		TrackingNumber:       StringField(f, FieldTrackingNumber),
		MobileWhatsappNumber: StringField(f, FieldMobileNumber),
		SalesPrice:           NumberField(f, FieldSalesPrice),
		Advance:              NumberField(f, FieldAdvance),
		Due:                  NumberField(f, FieldDue),
		IsArchived:           BoolField(f, FieldIsArchived),
		IsTrashed:            BoolField(f, FieldIsTrashed),
		CustomerCalled:       BoolField(f, FieldCustomerCalled),
	}
	if w.IsTrashed {
		if t, ok := TimeField(f, FieldTrashedAt); ok {
			w.TrashedAt = &t
		}
	}
	return w
}

// StringField reads a string field, converting numbers and bools.
func StringField(f map[string]any, key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// NumberField reads a numeric field, accepting numeric strings. NaN and
// unparseable values read as zero.
func NumberField(f map[string]any, key string) float64 {
	var n float64
	switch v := f[key].(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := ParseAmount(v)
		if err != nil {
			return 0
		}
		n = parsed
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// BoolField reads a boolean field. Anything but true or "true" is false.
func BoolField(f map[string]any, key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// TimeField reads an RFC 3339 timestamp field.
func TimeField(f map[string]any, key string) (time.Time, bool) {
	switch v := f[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// ParseAmount parses a money amount, tolerating thousands separators and
// surrounding whitespace. An empty string is zero.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
