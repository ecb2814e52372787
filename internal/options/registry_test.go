package options

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/tests/testutil"
)

func TestEnsureCreatesDefaults(t *testing.T) {
	docs := testutil.NewTestStore(t)
	r := NewRegistry(docs)
	ctx := context.Background()

	if err := r.Ensure(ctx); err != nil {
		t.Fatalf("ensuring registry: %v", err)
	}

	doc, err := docs.GetDocument(ctx, DocumentPath)
	if err != nil {
		t.Fatalf("expected registry document: %v", err)
	}
	got := model.OptionsFromFields(doc.Fields)
	if !reflect.DeepEqual(got, model.DefaultOptions()) {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestEnsureKeepsExistingDocument(t *testing.T) {
	docs := testutil.NewTestStore(t)
	ctx := context.Background()
	existing := model.Options{Statuses: []string{"Custom"}}
	if err := docs.SetDocument(ctx, DocumentPath, existing.Fields()); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	r := NewRegistry(docs)
	if err := r.Ensure(ctx); err != nil {
		t.Fatalf("ensuring registry: %v", err)
	}

	doc, _ := docs.GetDocument(ctx, DocumentPath)
	if got := model.OptionsFromFields(doc.Fields); !reflect.DeepEqual(got.Statuses, []string{"Custom"}) {
		t.Fatalf("existing document must not be overwritten, got %+v", got)
	}
	if !slices.Contains(r.Options().Statuses, "Custom") {
		t.Fatalf("expected local registry to pick up Custom")
	}
}

func TestApplyNeverShrinks(t *testing.T) {
	r := NewRegistry(testutil.NewTestStore(t))

	r.Apply(model.Options{WorkBy: []string{"Ann"}}.Fields())
	got := r.Apply(model.Options{}.Fields())

	if !slices.Contains(got.WorkBy, "Ann") {
		t.Fatalf("expected Ann to survive an empty snapshot, got %v", got.WorkBy)
	}
	if len(got.Statuses) != len(model.DefaultOptions().Statuses) {
		t.Fatalf("defaults must survive, got %v", got.Statuses)
	}
}

func TestRegisterUnionsRemote(t *testing.T) {
	docs := testutil.NewTestStore(t)
	r := NewRegistry(docs)
	ctx := context.Background()
	if err := r.Ensure(ctx); err != nil {
		t.Fatalf("ensuring: %v", err)
	}

	added, err := r.Register(ctx, model.Options{
		WorkTypes: []string{"Visa", "Umrah"},
		WorkBy:    []string{"Alice"},
	})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}
	if !reflect.DeepEqual(added.WorkTypes, []string{"Umrah"}) || !reflect.DeepEqual(added.WorkBy, []string{"Alice"}) {
		t.Fatalf("unexpected added values %+v", added)
	}

	doc, _ := docs.GetDocument(ctx, DocumentPath)
	got := model.OptionsFromFields(doc.Fields)
	if !slices.Contains(got.WorkTypes, "Umrah") || !slices.Contains(got.WorkBy, "Alice") {
		t.Fatalf("expected remote union, got %+v", got)
	}
	if !slices.Contains(got.WorkTypes, "Visa") {
		t.Fatalf("existing values must remain, got %+v", got)
	}
}

func TestRegisterCreatesMissingDocument(t *testing.T) {
	docs := testutil.NewTestStore(t)
	r := NewRegistry(docs)

	if _, err := r.Register(context.Background(), model.Options{Statuses: []string{"On Hold"}}); err != nil {
		t.Fatalf("registering: %v", err)
	}
	doc, err := docs.GetDocument(context.Background(), DocumentPath)
	if err != nil {
		t.Fatalf("expected document to be created: %v", err)
	}
	if got := model.OptionsFromFields(doc.Fields); !slices.Contains(got.Statuses, "On Hold") {
		t.Fatalf("expected On Hold, got %+v", got)
	}
}

func TestRegisterFailureKeepsLocalState(t *testing.T) {
	docs := &testutil.FailingStore{Store: testutil.NewTestStore(t), Err: errors.New("offline"), Fail: true}
	r := NewRegistry(docs)

	if _, err := r.Register(context.Background(), model.Options{WorkBy: []string{"Zed"}}); err == nil {
		t.Fatalf("expected error")
	}
	if slices.Contains(r.Options().WorkBy, "Zed") {
		t.Fatalf("failed write must not add local values")
	}
}

func TestRegisterNothingNew(t *testing.T) {
	docs := &testutil.FailingStore{Store: testutil.NewTestStore(t), Err: errors.New("offline"), Fail: true}
	r := NewRegistry(docs)

	added, err := r.Register(context.Background(), model.Options{Statuses: []string{model.StatusApproved}})
	if err != nil || !added.IsEmpty() {
		t.Fatalf("expected no write for known values, got %+v %v", added, err)
	}
}
