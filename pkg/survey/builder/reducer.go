package builder

import (
	"log/slog"

	"github.com/case-framework/discovery-builder/pkg/survey/logic"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

// MAX_HISTORY is the number of past snapshots kept for undo.
const MAX_HISTORY = 50

// State is the document history. Snapshots are never modified once stored.
type State struct {
	Present *types.Survey
	Past    []*types.Survey
	Future  []*types.Survey
}

func (s State) CanUndo() bool {
	return len(s.Past) > 0
}

func (s State) CanRedo() bool {
	return len(s.Future) > 0
}

// Reduce computes the next history state. Edits that leave the document unchanged return the
// input state, so they do not show up in the undo history.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetSurvey:
		return State{Present: a.Survey, Past: []*types.Survey{}, Future: []*types.Survey{}}
	case Undo:
		if len(state.Past) == 0 {
			return state
		}
		previous := state.Past[len(state.Past)-1]
		future := state.Future
		if state.Present != nil {
			future = append([]*types.Survey{state.Present}, state.Future...)
		}
		return State{
			Present: previous,
			Past:    append([]*types.Survey{}, state.Past[:len(state.Past)-1]...),
			Future:  future,
		}
	case Redo:
		if len(state.Future) == 0 {
			return state
		}
		next := state.Future[0]
		past := state.Past
		if state.Present != nil {
			past = append(append([]*types.Survey{}, state.Past...), state.Present)
		}
		return State{
			Present: next,
			Past:    past,
			Future:  append([]*types.Survey{}, state.Future[1:]...),
		}
	}

	if state.Present == nil {
		return state
	}
	newPresent := ApplyAction(state.Present, action)
	if newPresent == state.Present {
		return state
	}

	past := append(append([]*types.Survey{}, state.Past...), state.Present)
	if len(past) > MAX_HISTORY {
		past = past[len(past)-MAX_HISTORY:]
	}
	return State{
		Present: newPresent,
		Past:    past,
		Future:  []*types.Survey{},
	}
}

// ApplyAction returns the edited survey, or the same pointer when the action changes nothing
// (unknown ids, moves past the boundary, duplicate field names, empty patches). The input is
// never modified.
func ApplyAction(survey *types.Survey, action Action) *types.Survey {
	if survey == nil {
		return nil
	}

	switch a := action.(type) {
	case AddBlock:
		s := *survey
		s.Blocks = append(copyBlocks(survey.Blocks), a.Block)
		return &s

	case UpdateBlock:
		index, ok := survey.FindBlock(a.Block.ID)
		if !ok {
			return survey
		}
		s := *survey
		s.Blocks = copyBlocks(survey.Blocks)
		s.Blocks[index] = a.Block
		return &s

	case DeleteBlock:
		index, ok := survey.FindBlock(a.BlockID)
		if !ok {
			return survey
		}
		s := *survey
		s.Blocks = removeAt(survey.Blocks, index)
		return &s

	case MoveBlock:
		index, ok := survey.FindBlock(a.BlockID)
		if !ok {
			return survey
		}
		newIndex := stepIndex(index, a.Direction)
		if newIndex < 0 || newIndex >= len(survey.Blocks) {
			return survey
		}
		s := *survey
		s.Blocks = copyBlocks(survey.Blocks)
		s.Blocks[index], s.Blocks[newIndex] = s.Blocks[newIndex], s.Blocks[index]
		return &s

	case ReorderBlock:
		index, ok := survey.FindBlock(a.BlockID)
		if !ok {
			return survey
		}
		moved := survey.Blocks[index]
		blocks := removeAt(survey.Blocks, index)
		target := clampIndex(a.NewIndex, len(blocks))
		if target == index {
			return survey
		}
		s := *survey
		s.Blocks = insertAt(blocks, target, moved)
		return &s

	case AddQuestion:
		return updateBlock(survey, a.BlockID, func(b types.Block) (types.Block, bool) {
			b.Questions = append(copyQuestions(b.Questions), a.Question)
			return b, true
		})

	case UpdateQuestion:
		return updateBlock(survey, a.BlockID, func(b types.Block) (types.Block, bool) {
			index, ok := b.FindQuestion(a.Question.ID)
			if !ok {
				return b, false
			}
			b.Questions = copyQuestions(b.Questions)
			b.Questions[index] = a.Question
			return b, true
		})

	case DuplicateQuestion:
		return updateBlock(survey, a.BlockID, func(b types.Block) (types.Block, bool) {
			index, ok := b.FindQuestion(a.QuestionID)
			if !ok {
				return b, false
			}
			duplicate := duplicateQuestion(b.Questions[index])
			b.Questions = insertAt(b.Questions, index+1, duplicate)
			return b, true
		})

	case DeleteQuestion:
		return updateBlock(survey, a.BlockID, func(b types.Block) (types.Block, bool) {
			index, ok := b.FindQuestion(a.QuestionID)
			if !ok {
				return b, false
			}
			b.Questions = removeAt(b.Questions, index)
			return b, true
		})

	case MoveQuestion:
		return updateBlock(survey, a.BlockID, func(b types.Block) (types.Block, bool) {
			index, ok := b.FindQuestion(a.QuestionID)
			if !ok {
				return b, false
			}
			newIndex := stepIndex(index, a.Direction)
			if newIndex < 0 || newIndex >= len(b.Questions) {
				return b, false
			}
			b.Questions = copyQuestions(b.Questions)
			b.Questions[index], b.Questions[newIndex] = b.Questions[newIndex], b.Questions[index]
			return b, true
		})

	case ReorderQuestion:
		return reorderQuestion(survey, a)

	case UpdateWelcomePage:
		if a.Patch.IsEmpty() {
			return survey
		}
		s := *survey
		s.WelcomePage = a.Patch.Apply(survey.WelcomePage)
		return &s

	case UpdateConsentPage:
		if a.Patch.IsEmpty() {
			return survey
		}
		s := *survey
		s.ConsentPage = a.Patch.Apply(survey.ConsentPage)
		return &s

	case UpdateThankYouPage:
		if a.Patch.IsEmpty() {
			return survey
		}
		s := *survey
		s.ThankYouPage = a.Patch.Apply(survey.ThankYouPage)
		return &s

	case UpdateLookAndFeel:
		if len(a.Patch) == 0 {
			return survey
		}
		s := *survey
		s.LookAndFeel = mergeLookAndFeel(survey.LookAndFeel, a.Patch)
		return &s

	case UpdateSettings:
		if a.Patch.IsEmpty() {
			return survey
		}
		s := *survey
		s.Settings = a.Patch.Apply(survey.Settings)
		return &s

	case UpdateSurvey:
		if a.Patch.IsEmpty() {
			return survey
		}
		s := a.Patch.Apply(*survey)
		return &s

	case AddEmbeddedField:
		schema := EffectiveSchema(survey)
		if _, exists := schema.FindField(a.Field.Name); exists {
			return survey
		}
		schema.Fields = append(schema.Fields, a.Field)
		s := *survey
		s.EmbeddedDataSchema = &schema
		return &s

	case UpdateEmbeddedField:
		schema := EffectiveSchema(survey)
		index, ok := schema.FindField(a.Field.Name)
		if !ok {
			return survey
		}
		schema.Fields[index] = a.Field
		s := *survey
		s.EmbeddedDataSchema = &schema
		return &s

	case DeleteEmbeddedField:
		schema := EffectiveSchema(survey)
		index, ok := schema.FindField(a.Name)
		if !ok {
			return survey
		}
		schema.Fields = removeAt(schema.Fields, index)
		s := *survey
		s.EmbeddedDataSchema = &schema
		return &s

	default:
		slog.Warn("action cannot be applied to the survey", slog.String("type", string(action.ActionType())))
		return survey
	}
}

// EffectiveSchema returns a private copy of the survey's schema, or the default fields when the
// survey has none.
func EffectiveSchema(survey *types.Survey) types.EmbeddedDataSchema {
	if survey.EmbeddedDataSchema == nil {
		return types.EmbeddedDataSchema{
			Fields:               logic.DefaultEmbeddedFields(),
			AllowUndefinedFields: false,
		}
	}
	schema := *survey.EmbeddedDataSchema
	schema.Fields = append([]types.EmbeddedDataField{}, survey.EmbeddedDataSchema.Fields...)
	return schema
}

// updateBlock applies fn to the block with the given id. fn reports whether it changed anything.
func updateBlock(survey *types.Survey, blockID string, fn func(types.Block) (types.Block, bool)) *types.Survey {
	index, ok := survey.FindBlock(blockID)
	if !ok {
		return survey
	}
	updated, changed := fn(survey.Blocks[index])
	if !changed {
		return survey
	}
	s := *survey
	s.Blocks = copyBlocks(survey.Blocks)
	s.Blocks[index] = updated
	return &s
}

func reorderQuestion(survey *types.Survey, a ReorderQuestion) *types.Survey {
	sourceIndex, ok := survey.FindBlock(a.SourceBlockID)
	if !ok {
		return survey
	}
	source := survey.Blocks[sourceIndex]
	questionIndex, ok := source.FindQuestion(a.QuestionID)
	if !ok {
		return survey
	}
	question := source.Questions[questionIndex]

	if a.SourceBlockID == a.TargetBlockID {
		questions := removeAt(source.Questions, questionIndex)
		target := clampIndex(a.NewIndex, len(questions))
		if target == questionIndex {
			return survey
		}
		source.Questions = insertAt(questions, target, question)
		s := *survey
		s.Blocks = copyBlocks(survey.Blocks)
		s.Blocks[sourceIndex] = source
		return &s
	}

	targetIndex, ok := survey.FindBlock(a.TargetBlockID)
	if !ok {
		return survey
	}
	targetBlock := survey.Blocks[targetIndex]
	source.Questions = removeAt(source.Questions, questionIndex)
	targetBlock.Questions = insertAt(targetBlock.Questions, clampIndex(a.NewIndex, len(targetBlock.Questions)), question)

	s := *survey
	s.Blocks = copyBlocks(survey.Blocks)
	s.Blocks[sourceIndex] = source
	s.Blocks[targetIndex] = targetBlock
	return &s
}

func stepIndex(index int, direction Direction) int {
	if direction == DIRECTION_UP {
		return index - 1
	}
	return index + 1
}

// clampIndex keeps an insert position within [0, length].
func clampIndex(index int, length int) int {
	if index < 0 {
		return 0
	}
	if index > length {
		return length
	}
	return index
}

func copyBlocks(blocks []types.Block) []types.Block {
	return append([]types.Block{}, blocks...)
}

func copyQuestions(questions []types.Question) []types.Question {
	return append([]types.Question{}, questions...)
}

// removeAt returns a new slice without the element at index.
func removeAt[T any](items []T, index int) []T {
	result := make([]T, 0, len(items))
	result = append(result, items[:index]...)
	return append(result, items[index+1:]...)
}

// insertAt returns a new slice with item placed at index.
func insertAt[T any](items []T, index int, item T) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, items[:index]...)
	result = append(result, item)
	return append(result, items[index:]...)
}
