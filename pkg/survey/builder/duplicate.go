package builder

import (
	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/google/uuid"
)

const DUPLICATE_SUFFIX = " (Copy)"

// newID generates ids for duplicated questions and their nested items.
var newID = uuid.NewString

// duplicateQuestion deep copies a question with a fresh id and " (Copy)" appended to its text.
// Nested item ids and condition ids are regenerated as well, and references between nested items
// (row groups, item groups, column logic sources, heatmap click regions) follow the new ids.
func duplicateQuestion(original types.Question) types.Question {
	q := original.Clone()
	if q.Body == nil {
		// Clone cannot round-trip a question without body; copy the logic by hand
		q.DisplayLogic, q.SkipLogic = copyDisplayLogic(original.DisplayLogic), copySkipLogic(original.SkipLogic)
	}
	q.ID = newID()
	q.Text = original.Text + DUPLICATE_SUFFIX

	ids := map[string]string{}
	remap := func(id string) string {
		if id == "" {
			return id
		}
		if n, ok := ids[id]; ok {
			return n
		}
		n := newID()
		ids[id] = n
		return n
	}
	lookup := func(id string) string {
		if n, ok := ids[id]; ok {
			return n
		}
		return id
	}

	if q.DisplayLogic != nil {
		regenerateConditionIDs(q.DisplayLogic.Conditions)
	}
	if q.SkipLogic != nil {
		regenerateConditionIDs(q.SkipLogic.Conditions)
	}

	switch b := q.Body.(type) {
	case *types.MultipleChoice:
		for i := range b.Choices {
			b.Choices[i].ID = remap(b.Choices[i].ID)
		}
	case *types.FormField:
		for i := range b.Fields {
			b.Fields[i].ID = remap(b.Fields[i].ID)
		}
	case *types.MatrixTable:
		for i := range b.Groups {
			b.Groups[i].ID = remap(b.Groups[i].ID)
		}
		for i := range b.Rows {
			b.Rows[i].ID = remap(b.Rows[i].ID)
			b.Rows[i].GroupID = lookup(b.Rows[i].GroupID)
		}
		for i := range b.Columns {
			b.Columns[i].ID = remap(b.Columns[i].ID)
		}
		for i := range b.ScalePoints {
			b.ScalePoints[i].ID = remap(b.ScalePoints[i].ID)
		}
		if b.ProfileScales != nil {
			scales := make(map[string]types.ProfileScale, len(b.ProfileScales))
			for rowID, scale := range b.ProfileScales {
				scales[lookup(rowID)] = scale
			}
			b.ProfileScales = scales
		}
	case *types.SideBySide:
		for i := range b.Statements {
			b.Statements[i].ID = remap(b.Statements[i].ID)
		}
		for i := range b.Columns {
			b.Columns[i].ID = remap(b.Columns[i].ID)
			for j := range b.Columns[i].Choices {
				b.Columns[i].Choices[j].ID = remap(b.Columns[i].Choices[j].ID)
			}
		}
		for i := range b.Columns {
			if cl := b.Columns[i].ColumnLogic; cl != nil {
				cl.SourceColumnID = lookup(cl.SourceColumnID)
				regenerateConditionIDs(cl.Conditions)
			}
		}
	case *types.Slider:
		for i := range b.Statements {
			b.Statements[i].ID = remap(b.Statements[i].ID)
		}
	case *types.RankOrder:
		for i := range b.Items {
			b.Items[i].ID = remap(b.Items[i].ID)
		}
	case *types.ConstantSum:
		for i := range b.Items {
			b.Items[i].ID = remap(b.Items[i].ID)
		}
	case *types.PickGroupRank:
		for i := range b.Groups {
			b.Groups[i].ID = remap(b.Groups[i].ID)
		}
		for i := range b.Items {
			b.Items[i].ID = remap(b.Items[i].ID)
			b.Items[i].GroupID = lookup(b.Items[i].GroupID)
		}
	case *types.HotSpot:
		for i := range b.Regions {
			b.Regions[i].ID = remap(b.Regions[i].ID)
		}
	case *types.Heatmap:
		for i := range b.Regions {
			b.Regions[i].ID = remap(b.Regions[i].ID)
		}
		for i := range b.Clicks {
			b.Clicks[i].ID = remap(b.Clicks[i].ID)
			b.Clicks[i].RegionID = lookup(b.Clicks[i].RegionID)
		}
	case *types.TextEntry, *types.NetPromoter, *types.TextGraphic, *types.PageBreak:
		// no nested items
	}
	return q
}

func regenerateConditionIDs(conditions []types.DisplayLogicCondition) {
	for i := range conditions {
		conditions[i].ID = newID()
	}
}

func copyDisplayLogic(dl *types.DisplayLogic) *types.DisplayLogic {
	if dl == nil {
		return nil
	}
	c := *dl
	c.Conditions = append([]types.DisplayLogicCondition{}, dl.Conditions...)
	return &c
}

func copySkipLogic(sl *types.SkipLogic) *types.SkipLogic {
	if sl == nil {
		return nil
	}
	c := *sl
	c.Conditions = append([]types.DisplayLogicCondition{}, sl.Conditions...)
	return &c
}
