package types

// NewQuestion returns a question of the given type populated with the editor defaults.
// newID is used for the question and for every nested item that needs an id.
func NewQuestion(qType QuestionType, newID func() string) (Question, error) {
	q := Question{
		ID:   newID(),
		Text: "",
	}

	switch qType {
	case QUESTION_TYPE_MULTIPLE_CHOICE:
		q.Text = "Click to write the question text"
		q.Body = &MultipleChoice{
			DisplayFormat: "vertical",
			Choices: []Choice{
				{ID: newID(), Text: "Option 1"},
				{ID: newID(), Text: "Option 2"},
				{ID: newID(), Text: "Option 3"},
			},
		}
	case QUESTION_TYPE_TEXT_ENTRY:
		q.Text = "Click to write the question text"
		q.Body = &TextEntry{Format: "singleLine"}
	case QUESTION_TYPE_FORM_FIELD:
		q.Text = "Please fill in the following fields"
		q.Body = &FormField{
			Fields: []FormFieldEntry{
				{ID: newID(), Label: "Field 1", Size: "medium"},
			},
		}
	case QUESTION_TYPE_MATRIX_TABLE:
		q.Text = "Please rate the following statements"
		q.Body = &MatrixTable{
			Variation: "likert",
			Rows: []MatrixRow{
				{ID: newID(), Text: "Statement 1"},
				{ID: newID(), Text: "Statement 2"},
			},
			Columns: []MatrixColumn{
				{ID: newID(), Text: "Disagree"},
				{ID: newID(), Text: "Neutral"},
				{ID: newID(), Text: "Agree"},
			},
		}
	case QUESTION_TYPE_SIDE_BY_SIDE:
		q.Text = "Please answer for each statement"
		q.Body = &SideBySide{
			Statements: []SideBySideStatement{
				{ID: newID(), Text: "Statement 1"},
			},
			Columns: []SideBySideColumn{
				{ID: newID(), Header: "Column 1", Type: "singleAnswer", Choices: []SideBySideChoice{
					{ID: newID(), Text: "Yes"},
					{ID: newID(), Text: "No"},
				}},
			},
		}
	case QUESTION_TYPE_SLIDER:
		q.Text = "Move the slider to answer"
		q.Body = &Slider{
			DisplayType: "sliders",
			Min:         0,
			Max:         100,
			ShowValue:   true,
			Statements: []SliderStatement{
				{ID: newID(), Text: "Statement 1"},
			},
		}
	case QUESTION_TYPE_RANK_ORDER:
		q.Text = "Rank the following items"
		q.Body = &RankOrder{
			Format: "dragDrop",
			Items: []RankItem{
				{ID: newID(), Text: "Item 1"},
				{ID: newID(), Text: "Item 2"},
				{ID: newID(), Text: "Item 3"},
			},
		}
	case QUESTION_TYPE_CONSTANT_SUM:
		q.Text = "Distribute 100 points across the items"
		total := 100.0
		q.Body = &ConstantSum{
			DisplayFormat: "textBoxes",
			MustTotal:     &total,
			ShowTotal:     true,
			UnitPosition:  "before",
			Items: []ConstantSumItem{
				{ID: newID(), Text: "Item 1"},
				{ID: newID(), Text: "Item 2"},
			},
		}
	case QUESTION_TYPE_PICK_GROUP_RANK:
		q.Text = "Sort the items into groups"
		q.Body = &PickGroupRank{
			Columns: 1,
			Items: []PickGroupItem{
				{ID: newID(), Text: "Item 1"},
				{ID: newID(), Text: "Item 2"},
			},
			Groups: []PickGroup{
				{ID: newID(), Name: "Group 1"},
				{ID: newID(), Name: "Group 2"},
			},
		}
	case QUESTION_TYPE_NET_PROMOTER:
		q.Text = "How likely are you to recommend us to a friend or colleague?"
		q.Body = &NetPromoter{
			MinLabel:    "Not at all likely",
			MaxLabel:    "Extremely likely",
			ScalePreset: "recommendation",
		}
	case QUESTION_TYPE_TEXT_GRAPHIC:
		q.Body = &TextGraphic{ContentType: "text"}
	case QUESTION_TYPE_HOT_SPOT:
		q.Text = "Select the areas of the image"
		q.Body = &HotSpot{Mode: "onOff", Regions: []HotSpotRegion{}}
	case QUESTION_TYPE_HEATMAP:
		q.Text = "Click on the image"
		q.Body = &Heatmap{MaxClicks: 3, Clicks: []HeatmapClick{}}
	case QUESTION_TYPE_PAGE_BREAK:
		q.Body = &PageBreak{}
	default:
		body, err := NewQuestionBody(qType)
		if err != nil {
			return Question{}, err
		}
		q.Body = body
	}
	return q, nil
}
