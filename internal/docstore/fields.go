package docstore

import (
	"fmt"
	"reflect"
	"time"
)

type arrayUnion struct {
	values []any
}

type deleteField struct{}

// DeleteField removes a field when used as an update value.
var DeleteField any = deleteField{}

// ArrayUnion appends the given values to an array field, skipping values
// already present.
func ArrayUnion(values ...any) any {
	return arrayUnion{values: values}
}

// StringsUnion is ArrayUnion for a string slice.
func StringsUnion(values []string) any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return arrayUnion{values: out}
}

// applyUpdates merges updates into a copy of current.
func applyUpdates(current, updates Fields) Fields {
	merged := make(Fields, len(current)+len(updates))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range updates {
		switch u := v.(type) {
		case deleteField:
			delete(merged, k)
		case arrayUnion:
			merged[k] = unionValues(merged[k], u.values)
		default:
			merged[k] = normalizeValue(v)
		}
	}
	return merged
}

// resolveSentinels prepares a full document body for Set: union sentinels
// become plain arrays and deletes are dropped.
func resolveSentinels(fields Fields) Fields {
	return applyUpdates(nil, fields)
}

func unionValues(existing any, add []any) []any {
	var out []any
	if arr, ok := existing.([]any); ok {
		out = append(out, arr...)
	}
	for _, v := range add {
		v = normalizeValue(v)
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	if out == nil {
		out = []any{}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, e := range list {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

// normalizeValue maps Go values onto the JSON types a stored document reads
// back as, so in-memory comparisons match decoded documents.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case fmt.Stringer:
		return t.String()
	default:
		return v
	}
}
