package main

import (
	"testing"
	"time"

	"github.com/case-framework/discovery-builder/pkg/db/localstore"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

func openStore(t *testing.T) *localstore.LocalStore {
	t.Helper()
	store, err := localstore.Open(localstore.InMemoryConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func draft(id string, name string, savedAt time.Time) types.SurveyDraft {
	return types.SurveyDraft{
		Survey:  &types.Survey{ID: id, Name: name, Blocks: []types.Block{}},
		SavedAt: savedAt,
	}
}

func TestImportDrafts(t *testing.T) {
	src := openStore(t)
	dst := openStore(t)
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, d := range []types.SurveyDraft{
		draft("s1", "new", t0),
		draft("s2", "older local", t0),
		draft("s3", "newer local", t0.Add(time.Hour)),
	} {
		if err := src.SaveDraft(d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for _, d := range []types.SurveyDraft{
		draft("s2", "remote", t0.Add(time.Minute)),
		draft("s3", "remote", t0),
	} {
		if err := dst.SaveDraft(d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	result, err := importDrafts(src, dst, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 || result.Failed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	expectedNames := map[string]string{"s1": "new", "s2": "remote", "s3": "newer local"}
	for id, name := range expectedNames {
		d, err := dst.LoadDraft(id)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", id, err)
			continue
		}
		if d.Survey.Name != name {
			t.Errorf("unexpected draft %s: %s", id, d.Survey.Name)
		}
	}

	remaining, err := src.ListDraftIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 1 || remaining[0] != "s2" {
		t.Errorf("unexpected remaining local drafts: %v", remaining)
	}
}
