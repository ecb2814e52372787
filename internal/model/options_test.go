package model

import (
	"reflect"
	"testing"
)

func TestOptionsUnionPreservesOrderAndDedupes(t *testing.T) {
	base := Options{Statuses: []string{"A", "B"}}
	got := base.Union(Options{Statuses: []string{"B", "C", "", "A"}, WorkBy: []string{"Ann"}})

	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got.Statuses, want) {
		t.Errorf("expected %v, got %v", want, got.Statuses)
	}
	if want := []string{"Ann"}; !reflect.DeepEqual(got.WorkBy, want) {
		t.Errorf("expected %v, got %v", want, got.WorkBy)
	}
	if len(base.Statuses) != 2 {
		t.Errorf("union must not modify its receiver")
	}
}

func TestOptionsMissing(t *testing.T) {
	have := DefaultOptions()
	got := have.Missing(Options{
		WorkTypes: []string{"Visa", "Umrah"},
		Statuses:  []string{StatusApproved},
	})
	if !reflect.DeepEqual(got.WorkTypes, []string{"Umrah"}) {
		t.Errorf("expected only the new work type, got %v", got.WorkTypes)
	}
	if len(got.Statuses) != 0 || len(got.WorkBy) != 0 {
		t.Errorf("expected nothing else missing, got %+v", got)
	}
}

func TestOptionsFieldsRoundTrip(t *testing.T) {
	in := DefaultOptions()
	out := OptionsFromFields(in.Fields())
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}
