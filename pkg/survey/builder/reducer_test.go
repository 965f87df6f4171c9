package builder

import (
	"fmt"
	"testing"

	"github.com/case-framework/discovery-builder/pkg/survey/logic"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useSequentialIDs(t *testing.T) {
	t.Helper()
	counter := 0
	original := newID
	newID = func() string {
		counter++
		return fmt.Sprintf("gen-%d", counter)
	}
	t.Cleanup(func() { newID = original })
}

func textQuestion(id string, text string) types.Question {
	return types.Question{ID: id, Text: text, Body: &types.TextEntry{Format: "singleLine"}}
}

func choiceQuestion(id string, text string, choiceIDs ...string) types.Question {
	choices := []types.Choice{}
	for _, c := range choiceIDs {
		choices = append(choices, types.Choice{ID: c, Text: "Choice " + c})
	}
	return types.Question{ID: id, Text: text, Body: &types.MultipleChoice{Choices: choices, DisplayFormat: "vertical"}}
}

func emptySurvey() *types.Survey {
	return &types.Survey{ID: "s1", Name: "Engagement", Blocks: []types.Block{}}
}

func twoBlockSurvey() *types.Survey {
	return &types.Survey{
		ID:   "s1",
		Name: "Engagement",
		Blocks: []types.Block{
			{ID: "b1", Name: "Block 1", Questions: []types.Question{textQuestion("q1", "First"), textQuestion("q2", "Second")}},
			{ID: "b2", Name: "Block 2", Questions: []types.Question{textQuestion("q3", "Third")}},
		},
	}
}

func loaded(survey *types.Survey) State {
	return Reduce(State{}, SetSurvey{Survey: survey})
}

func questionIDs(b types.Block) []string {
	ids := []string{}
	for _, q := range b.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestReduceAddAndDeleteBlock(t *testing.T) {
	state := loaded(emptySurvey())
	initialBlocks := state.Present.Blocks

	state = Reduce(state, AddBlock{Block: types.Block{ID: "b1", Name: "Block 1", Questions: []types.Question{}}})
	require.Len(t, state.Present.Blocks, 1)

	state = Reduce(state, DeleteBlock{BlockID: "b1"})
	assert.Equal(t, initialBlocks, state.Present.Blocks)
	assert.Len(t, state.Past, 2)
	assert.Empty(t, state.Future)

	state = Reduce(state, Undo{})
	assert.Len(t, state.Present.Blocks, 1)
	assert.Equal(t, "b1", state.Present.Blocks[0].ID)

	state = Reduce(state, Undo{})
	assert.Empty(t, state.Present.Blocks)
	assert.False(t, state.CanUndo())
	assert.True(t, state.CanRedo())
	assert.Len(t, state.Future, 2)
}

func TestReduceUndoRedo(t *testing.T) {
	state := loaded(emptySurvey())
	first := state.Present

	state = Reduce(state, AddBlock{Block: types.Block{ID: "b1"}})
	second := state.Present
	state = Reduce(state, AddBlock{Block: types.Block{ID: "b2"}})
	third := state.Present

	t.Run("undo moves present to future", func(t *testing.T) {
		undone := Reduce(state, Undo{})
		assert.Same(t, second, undone.Present)
		assert.Equal(t, []*types.Survey{third}, undone.Future)
		assert.Equal(t, []*types.Survey{first}, undone.Past)

		redone := Reduce(undone, Redo{})
		assert.Same(t, third, redone.Present)
		assert.Empty(t, redone.Future)
		assert.Equal(t, []*types.Survey{first, second}, redone.Past)
	})

	t.Run("new edit clears future", func(t *testing.T) {
		undone := Reduce(state, Undo{})
		edited := Reduce(undone, AddBlock{Block: types.Block{ID: "b3"}})
		assert.Empty(t, edited.Future)
		assert.Len(t, edited.Past, 2)
		assert.Equal(t, "b3", edited.Present.Blocks[1].ID)
	})

	t.Run("undo and redo on empty stacks", func(t *testing.T) {
		fresh := loaded(emptySurvey())
		assert.Equal(t, fresh, Reduce(fresh, Undo{}))
		assert.Equal(t, fresh, Reduce(fresh, Redo{}))
	})

	t.Run("set survey resets history", func(t *testing.T) {
		reset := Reduce(state, SetSurvey{Survey: twoBlockSurvey()})
		assert.Empty(t, reset.Past)
		assert.Empty(t, reset.Future)
		assert.Equal(t, "b1", reset.Present.Blocks[0].ID)
	})
}

func TestReduceHistoryLimit(t *testing.T) {
	state := loaded(emptySurvey())
	for i := 0; i < MAX_HISTORY+1; i++ {
		name := fmt.Sprintf("Name %d", i)
		state = Reduce(state, UpdateSurvey{Patch: SurveyPatch{Name: &name}})
	}
	assert.Len(t, state.Past, MAX_HISTORY)
	assert.Equal(t, "Name 50", state.Present.Name)
	// the initial document was dropped, the oldest kept snapshot is after the first rename
	assert.Equal(t, "Name 0", state.Past[0].Name)
}

func TestReduceNoOps(t *testing.T) {
	base := loaded(twoBlockSurvey())
	base = Reduce(base, UpdateSurvey{Patch: SurveyPatch{Name: strPtr("Renamed")}})

	tests := []struct {
		name   string
		action Action
	}{
		{name: "delete unknown block", action: DeleteBlock{BlockID: "missing"}},
		{name: "update unknown block", action: UpdateBlock{Block: types.Block{ID: "missing"}}},
		{name: "move first block up", action: MoveBlock{BlockID: "b1", Direction: DIRECTION_UP}},
		{name: "move last block down", action: MoveBlock{BlockID: "b2", Direction: DIRECTION_DOWN}},
		{name: "reorder block to same position", action: ReorderBlock{BlockID: "b2", NewIndex: 1}},
		{name: "add question to unknown block", action: AddQuestion{BlockID: "missing", Question: textQuestion("qx", "x")}},
		{name: "update unknown question", action: UpdateQuestion{BlockID: "b1", Question: textQuestion("qx", "x")}},
		{name: "duplicate unknown question", action: DuplicateQuestion{BlockID: "b1", QuestionID: "qx"}},
		{name: "delete unknown question", action: DeleteQuestion{BlockID: "b1", QuestionID: "qx"}},
		{name: "move first question up", action: MoveQuestion{BlockID: "b1", QuestionID: "q1", Direction: DIRECTION_UP}},
		{name: "move last question down", action: MoveQuestion{BlockID: "b1", QuestionID: "q2", Direction: DIRECTION_DOWN}},
		{name: "reorder question from unknown block", action: ReorderQuestion{SourceBlockID: "missing", TargetBlockID: "b1", QuestionID: "q1"}},
		{name: "reorder question to unknown block", action: ReorderQuestion{SourceBlockID: "b1", TargetBlockID: "missing", QuestionID: "q1"}},
		{name: "reorder question to same position", action: ReorderQuestion{SourceBlockID: "b1", TargetBlockID: "b1", QuestionID: "q1", NewIndex: 0}},
		{name: "empty survey patch", action: UpdateSurvey{}},
		{name: "empty welcome page patch", action: UpdateWelcomePage{}},
		{name: "empty settings patch", action: UpdateSettings{}},
		{name: "empty look and feel patch", action: UpdateLookAndFeel{}},
		{name: "add duplicate embedded field", action: AddEmbeddedField{Field: types.EmbeddedDataField{Name: "email"}}},
		{name: "update unknown embedded field", action: UpdateEmbeddedField{Field: types.EmbeddedDataField{Name: "missing"}}},
		{name: "delete unknown embedded field", action: DeleteEmbeddedField{Name: "missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(base, tt.action)
			assert.Same(t, base.Present, next.Present)
			assert.Len(t, next.Past, len(base.Past))
		})
	}

	t.Run("edits without a document", func(t *testing.T) {
		next := Reduce(State{}, AddBlock{Block: types.Block{ID: "b1"}})
		assert.Nil(t, next.Present)
		assert.Empty(t, next.Past)
	})
}

func TestReduceDoesNotModifySnapshots(t *testing.T) {
	state := loaded(twoBlockSurvey())
	before := state.Present

	state = Reduce(state, DeleteQuestion{BlockID: "b1", QuestionID: "q1"})
	state = Reduce(state, MoveBlock{BlockID: "b2", Direction: DIRECTION_UP})

	assert.Equal(t, []string{"q1", "q2"}, questionIDs(before.Blocks[0]))
	assert.Equal(t, "b1", before.Blocks[0].ID)
	assert.Equal(t, "b2", state.Present.Blocks[0].ID)
	assert.Equal(t, []string{"q2"}, questionIDs(state.Present.Blocks[1]))
}

func TestReduceUpdateQuestionIsRecordedEachTime(t *testing.T) {
	state := loaded(twoBlockSurvey())
	q := textQuestion("q1", "Updated text")

	state = Reduce(state, UpdateQuestion{BlockID: "b1", Question: q})
	state = Reduce(state, UpdateQuestion{BlockID: "b1", Question: q})

	assert.Len(t, state.Past, 2)
	assert.Equal(t, "Updated text", state.Present.Blocks[0].Questions[0].Text)
}

func TestApplyBlockActions(t *testing.T) {
	t.Run("update block", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), UpdateBlock{Block: types.Block{ID: "b2", Name: "Renamed"}})
		assert.Equal(t, "Renamed", s.Blocks[1].Name)
		assert.Empty(t, s.Blocks[1].Questions)
	})

	t.Run("move block down", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), MoveBlock{BlockID: "b1", Direction: DIRECTION_DOWN})
		assert.Equal(t, "b2", s.Blocks[0].ID)
		assert.Equal(t, "b1", s.Blocks[1].ID)
	})

	t.Run("reorder block clamps index", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), ReorderBlock{BlockID: "b1", NewIndex: 10})
		assert.Equal(t, "b2", s.Blocks[0].ID)
		assert.Equal(t, "b1", s.Blocks[1].ID)

		s = ApplyAction(twoBlockSurvey(), ReorderBlock{BlockID: "b2", NewIndex: -3})
		assert.Equal(t, "b2", s.Blocks[0].ID)
	})
}

func TestApplyQuestionActions(t *testing.T) {
	t.Run("add question appends to block", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), AddQuestion{BlockID: "b2", Question: textQuestion("q4", "Fourth")})
		assert.Equal(t, []string{"q3", "q4"}, questionIDs(s.Blocks[1]))
	})

	t.Run("move question down", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), MoveQuestion{BlockID: "b1", QuestionID: "q1", Direction: DIRECTION_DOWN})
		assert.Equal(t, []string{"q2", "q1"}, questionIDs(s.Blocks[0]))
	})

	t.Run("reorder within block", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), ReorderQuestion{SourceBlockID: "b1", TargetBlockID: "b1", QuestionID: "q2", NewIndex: 0})
		assert.Equal(t, []string{"q2", "q1"}, questionIDs(s.Blocks[0]))
	})

	t.Run("reorder across blocks", func(t *testing.T) {
		original := twoBlockSurvey()
		s := ApplyAction(original, ReorderQuestion{SourceBlockID: "b1", TargetBlockID: "b2", QuestionID: "q1", NewIndex: 1})
		assert.Equal(t, []string{"q2"}, questionIDs(s.Blocks[0]))
		assert.Equal(t, []string{"q3", "q1"}, questionIDs(s.Blocks[1]))
		assert.Equal(t, []string{"q1", "q2"}, questionIDs(original.Blocks[0]))
		assert.Equal(t, []string{"q3"}, questionIDs(original.Blocks[1]))
	})

	t.Run("reorder across blocks clamps index", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), ReorderQuestion{SourceBlockID: "b2", TargetBlockID: "b1", QuestionID: "q3", NewIndex: 99})
		assert.Equal(t, []string{"q1", "q2", "q3"}, questionIDs(s.Blocks[0]))
		assert.Empty(t, s.Blocks[1].Questions)
	})
}

func TestDuplicateQuestion(t *testing.T) {
	useSequentialIDs(t)

	survey := &types.Survey{
		ID: "s1",
		Blocks: []types.Block{{
			ID:        "b1",
			Questions: []types.Question{choiceQuestion("q1", "Favourite colour?", "c1", "c2", "c3"), textQuestion("q2", "Why?")},
		}},
	}
	survey.Blocks[0].Questions[0].DisplayLogic = &types.DisplayLogic{
		Enabled:  true,
		Operator: types.LOGIC_OPERATOR_AND,
		Conditions: []types.DisplayLogicCondition{
			{ID: "cond1", QuestionID: "q0", Operator: types.OPERATOR_IS_ANSWERED},
		},
	}

	s := ApplyAction(survey, DuplicateQuestion{BlockID: "b1", QuestionID: "q1"})
	require.Len(t, s.Blocks[0].Questions, 3)
	assert.Equal(t, "q2", s.Blocks[0].Questions[2].ID)

	original := s.Blocks[0].Questions[0]
	duplicate := s.Blocks[0].Questions[1]

	assert.Equal(t, "gen-1", duplicate.ID)
	assert.NotEqual(t, original.ID, duplicate.ID)
	assert.Equal(t, "Favourite colour? (Copy)", duplicate.Text)

	originalChoices := original.Body.(*types.MultipleChoice).Choices
	duplicateChoices := duplicate.Body.(*types.MultipleChoice).Choices
	require.Len(t, duplicateChoices, 3)
	for i := range originalChoices {
		assert.Equal(t, originalChoices[i].Text, duplicateChoices[i].Text)
		assert.NotEqual(t, originalChoices[i].ID, duplicateChoices[i].ID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{originalChoices[0].ID, originalChoices[1].ID, originalChoices[2].ID})

	require.NotNil(t, duplicate.DisplayLogic)
	assert.NotEqual(t, "cond1", duplicate.DisplayLogic.Conditions[0].ID)
	assert.Equal(t, "q0", duplicate.DisplayLogic.Conditions[0].QuestionID)
	assert.Equal(t, "cond1", original.DisplayLogic.Conditions[0].ID)

	duplicateChoices[0].Text = "changed"
	assert.Equal(t, "Choice c1", originalChoices[0].Text)
}

func TestDuplicateQuestionRemapsNestedReferences(t *testing.T) {
	useSequentialIDs(t)

	matrix := types.Question{
		ID:   "m1",
		Text: "Rate",
		Body: &types.MatrixTable{
			Groups:        []types.Group{{ID: "g1", Name: "Group"}},
			Rows:          []types.MatrixRow{{ID: "r1", Text: "Row", GroupID: "g1"}},
			Columns:       []types.MatrixColumn{{ID: "col1", Text: "Col"}},
			ProfileScales: map[string]types.ProfileScale{"r1": {Min: 1, Max: 5, Type: "stars"}},
		},
	}

	dup := duplicateQuestion(matrix)
	body := dup.Body.(*types.MatrixTable)
	assert.NotEqual(t, "g1", body.Groups[0].ID)
	assert.Equal(t, body.Groups[0].ID, body.Rows[0].GroupID)
	assert.NotEqual(t, "r1", body.Rows[0].ID)
	_, ok := body.ProfileScales[body.Rows[0].ID]
	assert.True(t, ok)

	originalBody := matrix.Body.(*types.MatrixTable)
	assert.Equal(t, "g1", originalBody.Rows[0].GroupID)
	assert.Equal(t, "r1", originalBody.Rows[0].ID)
}

func TestApplyPageAndSettingsPatches(t *testing.T) {
	survey := twoBlockSurvey()
	survey.LookAndFeel = types.LookAndFeel{"primaryColor": "#000000", "font": "Inter"}

	t.Run("welcome page keeps unpatched fields", func(t *testing.T) {
		survey.WelcomePage = types.WelcomePage{Enabled: true, Title: "Hello", Content: "Intro"}
		s := ApplyAction(survey, UpdateWelcomePage{Patch: WelcomePagePatch{Title: strPtr("Welcome")}})
		assert.Equal(t, types.WelcomePage{Enabled: true, Title: "Welcome", Content: "Intro"}, s.WelcomePage)
		assert.Equal(t, "Hello", survey.WelcomePage.Title)
	})

	t.Run("thank you page redirect", func(t *testing.T) {
		delay := 5
		s := ApplyAction(survey, UpdateThankYouPage{Patch: ThankYouPagePatch{RedirectURL: strPtr("https://example.org"), RedirectDelay: &delay}})
		assert.Equal(t, "https://example.org", s.ThankYouPage.RedirectURL)
		require.NotNil(t, s.ThankYouPage.RedirectDelay)
		assert.Equal(t, 5, *s.ThankYouPage.RedirectDelay)
	})

	t.Run("consent page", func(t *testing.T) {
		enabled := true
		s := ApplyAction(survey, UpdateConsentPage{Patch: ConsentPagePatch{Enabled: &enabled}})
		assert.True(t, s.ConsentPage.Enabled)
	})

	t.Run("look and feel merges keys", func(t *testing.T) {
		s := ApplyAction(survey, UpdateLookAndFeel{Patch: map[string]interface{}{"font": "Roboto"}})
		assert.Equal(t, types.LookAndFeel{"primaryColor": "#000000", "font": "Roboto"}, s.LookAndFeel)
		assert.Equal(t, "Inter", survey.LookAndFeel["font"])
	})

	t.Run("settings", func(t *testing.T) {
		threshold := 7
		s := ApplyAction(survey, UpdateSettings{Patch: SettingsPatch{AnonymityThreshold: &threshold}})
		assert.Equal(t, 7, s.Settings.AnonymityThreshold)
	})
}

func TestApplyEmbeddedFieldActions(t *testing.T) {
	field := types.EmbeddedDataField{Name: "team", Label: "Team", DataType: types.EMBEDDED_DATA_TYPE_TEXT}

	t.Run("add to survey without schema starts from defaults", func(t *testing.T) {
		s := ApplyAction(twoBlockSurvey(), AddEmbeddedField{Field: field})
		require.NotNil(t, s.EmbeddedDataSchema)
		defaults := logic.DefaultEmbeddedFields()
		assert.Len(t, s.EmbeddedDataSchema.Fields, len(defaults)+1)
		assert.Equal(t, field, s.EmbeddedDataSchema.Fields[len(defaults)])
		assert.False(t, s.EmbeddedDataSchema.AllowUndefinedFields)
	})

	t.Run("update and delete", func(t *testing.T) {
		survey := twoBlockSurvey()
		survey.EmbeddedDataSchema = &types.EmbeddedDataSchema{Fields: []types.EmbeddedDataField{field}, AllowUndefinedFields: true}

		updated := field
		updated.Label = "Squad"
		s := ApplyAction(survey, UpdateEmbeddedField{Field: updated})
		assert.Equal(t, "Squad", s.EmbeddedDataSchema.Fields[0].Label)
		assert.True(t, s.EmbeddedDataSchema.AllowUndefinedFields)
		assert.Equal(t, "Team", survey.EmbeddedDataSchema.Fields[0].Label)

		s = ApplyAction(s, DeleteEmbeddedField{Name: "team"})
		assert.Empty(t, s.EmbeddedDataSchema.Fields)
		assert.Len(t, survey.EmbeddedDataSchema.Fields, 1)
	})
}

func strPtr(s string) *string {
	return &s
}
