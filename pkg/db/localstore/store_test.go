package localstore

import (
	"testing"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSurvey(id string) *types.Survey {
	return &types.Survey{
		ID:   id,
		Name: "Pulse",
		Blocks: []types.Block{{
			ID:   "b1",
			Name: "Block 1",
			Questions: []types.Question{
				{ID: "q1", Text: "How are you?", Body: &types.TextEntry{Format: "singleLine"}},
			},
		}},
	}
}

func TestAutosaveKey(t *testing.T) {
	assert.Equal(t, "survey_builder_autosave_s1", AutosaveKey("s1"))
	assert.Equal(t, "survey_builder_autosave", AutosaveKey(""))
}

func TestDrafts(t *testing.T) {
	store := openTestStore(t)
	savedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("missing draft", func(t *testing.T) {
		_, err := store.LoadDraft("unknown")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(types.SurveyDraft{Survey: testSurvey("s1"), SavedAt: savedAt}))

		draft, err := store.LoadDraft("s1")
		require.NoError(t, err)
		assert.True(t, savedAt.Equal(draft.SavedAt))
		require.Len(t, draft.Survey.Blocks, 1)
		assert.Equal(t, types.QUESTION_TYPE_TEXT_ENTRY, draft.Survey.Blocks[0].Questions[0].Type())
	})

	t.Run("overwrite keeps latest", func(t *testing.T) {
		s := testSurvey("s1")
		s.Name = "Renamed"
		require.NoError(t, store.SaveDraft(types.SurveyDraft{Survey: s, SavedAt: savedAt.Add(time.Minute)}))

		draft, err := store.LoadDraft("s1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", draft.Survey.Name)
	})

	t.Run("list ids", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(types.SurveyDraft{Survey: testSurvey("s2"), SavedAt: savedAt}))
		require.NoError(t, store.SaveDraft(types.SurveyDraft{Survey: testSurvey(""), SavedAt: savedAt}))

		ids, err := store.ListDraftIDs()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.ClearDraft("s1"))
		_, err := store.LoadDraft("s1")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("draft without survey", func(t *testing.T) {
		assert.Error(t, store.SaveDraft(types.SurveyDraft{}))
	})
}

func TestTrashList(t *testing.T) {
	store := openTestStore(t)

	items, err := store.LoadTrash()
	require.NoError(t, err)
	assert.Empty(t, items)

	deletedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	block := types.Block{ID: "b1", Name: "Block 1", Questions: []types.Question{}}
	require.NoError(t, store.SaveTrash([]types.TrashItem{{
		ID:        "trash-1",
		Type:      types.TRASH_ITEM_TYPE_BLOCK,
		Block:     &block,
		DeletedAt: deletedAt,
		ExpiresAt: deletedAt.Add(30 * 24 * time.Hour),
	}}))

	items, err = store.LoadTrash()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "trash-1", items[0].ID)
	assert.Equal(t, "b1", items[0].Block.ID)
	assert.Nil(t, items[0].Question)

	require.NoError(t, store.SaveTrash(nil))
	items, err = store.LoadTrash()
	require.NoError(t, err)
	assert.Empty(t, items)
}
