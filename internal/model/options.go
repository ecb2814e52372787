package model

import "strings"

// Option registry document location and field names.
const (
	SettingsCollection = "settings"
	OptionsDocumentID  = "options"

	FieldWorkTypes = "workTypes"
	FieldStatuses  = "statuses"
	FieldWorkByAll = "workBy"
)

// Baseline status values. Each has its own dashboard tab.
const (
	StatusUnderProcessing = "UNDER PROCESSING"
	StatusApproved        = "Approved"
	StatusRejected        = "Rejected"
	StatusWaitingDelivery = "Waiting Delivery"
	StatusPaidOnly        = "PAID ONLY"
)

// Options holds the growing sets of allowed categorical values.
type Options struct {
	WorkTypes []string `json:"workTypes"`
	Statuses  []string `json:"statuses"`
	WorkBy    []string `json:"workBy"`
}

// DefaultOptions returns the static seed values for the option registry.
func DefaultOptions() Options {
	return Options{
		WorkTypes: []string{"Visa", "Passport Renewal", "Air Ticket", "Attestation", "Insurance"},
		Statuses: []string{
			StatusUnderProcessing,
			StatusApproved,
			StatusRejected,
			StatusWaitingDelivery,
			StatusPaidOnly,
		},
		WorkBy: []string{"Office"},
	}
}

// Union returns o extended with every value of other not already present,
// preserving order. Neither input is modified.
func (o Options) Union(other Options) Options {
	return Options{
		WorkTypes: UnionStrings(o.WorkTypes, other.WorkTypes),
		Statuses:  UnionStrings(o.Statuses, other.Statuses),
		WorkBy:    UnionStrings(o.WorkBy, other.WorkBy),
	}
}

// Missing returns the values of other that o does not contain yet.
func (o Options) Missing(other Options) Options {
	return Options{
		WorkTypes: missingStrings(o.WorkTypes, other.WorkTypes),
		Statuses:  missingStrings(o.Statuses, other.Statuses),
		WorkBy:    missingStrings(o.WorkBy, other.WorkBy),
	}
}

// IsEmpty reports whether all three lists are empty.
func (o Options) IsEmpty() bool {
	return len(o.WorkTypes) == 0 && len(o.Statuses) == 0 && len(o.WorkBy) == 0
}

// ItemOptions returns the categorical values carried by a work item.
func ItemOptions(w WorkItem) Options {
	var o Options
	if v := strings.TrimSpace(w.WorkOfType); v != "" {
		o.WorkTypes = []string{v}
	}
	if v := strings.TrimSpace(w.Status); v != "" {
		o.Statuses = []string{v}
	}
	if v := strings.TrimSpace(w.WorkBy); v != "" {
		o.WorkBy = []string{v}
	}
	return o
}

// OptionsFromFields decodes the registry document.
func OptionsFromFields(f map[string]any) Options {
	return Options{
		WorkTypes: StringListField(f, FieldWorkTypes),
		Statuses:  StringListField(f, FieldStatuses),
		WorkBy:    StringListField(f, FieldWorkByAll),
	}
}

// Fields encodes the registry document.
func (o Options) Fields() map[string]any {
	return map[string]any{
		FieldWorkTypes: toAnySlice(o.WorkTypes),
		FieldStatuses:  toAnySlice(o.Statuses),
		FieldWorkByAll: toAnySlice(o.WorkBy),
	}
}

// StringListField reads an array field, skipping non-string and blank
// entries and duplicates.
func StringListField(f map[string]any, key string) []string {
	var out []string
	switch v := f[key].(type) {
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return UnionStrings(nil, out)
}

// UnionStrings appends the values of add missing from base. Blank values
// are dropped and comparison is exact.
func UnionStrings(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]bool, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, v := range list {
			if strings.TrimSpace(v) == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func missingStrings(have, want []string) []string {
	present := make(map[string]bool, len(have))
	for _, v := range have {
		present[v] = true
	}
	var out []string
	for _, v := range UnionStrings(nil, want) {
		if !present[v] {
			out = append(out, v)
		}
	}
	return out
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
