package main

import (
	"errors"
	"log/slog"

	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type draftSource interface {
	builder.DraftStore
	ListDraftIDs() ([]string, error)
}

type importResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// importDrafts copies every draft of src into dst. A draft already present in dst is only
// overwritten when the source copy is newer.
func importDrafts(src draftSource, dst builder.DraftStore, clearImported bool) (importResult, error) {
	result := importResult{}
	ids, err := src.ListDraftIDs()
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		draft, err := src.LoadDraft(id)
		if err != nil {
			slog.Error("failed to read draft", slog.String("surveyID", id), slog.String("error", err.Error()))
			result.Failed++
			continue
		}

		existing, err := dst.LoadDraft(id)
		switch {
		case err == nil && !draft.SavedAt.After(existing.SavedAt):
			result.Skipped++
			continue
		case err != nil && !errors.Is(err, types.ErrDraftNotFound):
			slog.Error("failed to read target draft", slog.String("surveyID", id), slog.String("error", err.Error()))
			result.Failed++
			continue
		}

		if err := dst.SaveDraft(draft); err != nil {
			slog.Error("failed to write draft", slog.String("surveyID", id), slog.String("error", err.Error()))
			result.Failed++
			continue
		}
		result.Imported++

		if clearImported {
			if err := src.ClearDraft(id); err != nil {
				slog.Warn("failed to clear imported draft", slog.String("surveyID", id), slog.String("error", err.Error()))
			}
		}
	}
	return result, nil
}
