package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func sequentialIDs() func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
}

func TestQuestionJSON(t *testing.T) {
	t.Run("decode multiple choice with logic", func(t *testing.T) {
		raw := `{
			"id": "q2",
			"type": "MultipleChoice",
			"text": "Pick some",
			"required": true,
			"allowMultiple": true,
			"displayFormat": "vertical",
			"choices": [{"id": "c1", "text": "A"}, {"id": "c2", "text": "B"}],
			"displayLogic": {
				"enabled": true,
				"operator": "AND",
				"conditions": [{"id": "cond1", "sourceType": "question", "questionId": "q1", "operator": "equals", "value": "Yes"}]
			}
		}`
		var q Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if q.Type() != QUESTION_TYPE_MULTIPLE_CHOICE {
			t.Errorf("unexpected type: %s", q.Type())
		}
		mc, ok := q.Body.(*MultipleChoice)
		if !ok {
			t.Errorf("unexpected body: %T", q.Body)
			return
		}
		if !mc.AllowMultiple || len(mc.Choices) != 2 || mc.Choices[1].ID != "c2" {
			t.Errorf("unexpected body content: %+v", mc)
		}
		if q.DisplayLogic == nil || len(q.DisplayLogic.Conditions) != 1 || q.DisplayLogic.Conditions[0].QuestionID != "q1" {
			t.Errorf("unexpected display logic: %+v", q.DisplayLogic)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		var q Question
		err := json.Unmarshal([]byte(`{"id": "q1", "type": "Carousel", "text": "x"}`), &q)
		if err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("encode keeps discriminator and variant fields flat", func(t *testing.T) {
		q := Question{
			ID:   "q1",
			Text: "Rate us",
			Body: &Slider{Min: 0, Max: 10, DisplayType: "sliders", Statements: []SliderStatement{{ID: "s1", Text: "Speed"}}},
		}
		data, err := json.Marshal(q)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		str := string(data)
		for _, expected := range []string{`"type":"Slider"`, `"statements":[`, `"max":10`, `"id":"q1"`} {
			if !strings.Contains(str, expected) {
				t.Errorf("expected %s in %s", expected, str)
			}
		}
	})

	t.Run("question without body cannot be encoded", func(t *testing.T) {
		_, err := json.Marshal(Question{ID: "q1"})
		if err == nil {
			t.Error("should produce error")
		}
	})
}

func TestQuestionClone(t *testing.T) {
	orig := Question{
		ID:   "q1",
		Text: "Pick",
		Body: &MultipleChoice{Choices: []Choice{{ID: "c1", Text: "A"}}},
		DisplayLogic: &DisplayLogic{
			Enabled:    true,
			Operator:   LOGIC_OPERATOR_OR,
			Conditions: []DisplayLogicCondition{{ID: "cond1", QuestionID: "q0", Operator: OPERATOR_IS_ANSWERED}},
		},
	}
	c := orig.Clone()
	c.Body.(*MultipleChoice).Choices[0].Text = "changed"
	c.DisplayLogic.Conditions[0].QuestionID = "changed"

	if orig.Body.(*MultipleChoice).Choices[0].Text != "A" {
		t.Error("clone shares choices with original")
	}
	if orig.DisplayLogic.Conditions[0].QuestionID != "q0" {
		t.Error("clone shares display logic with original")
	}
}

func TestQuestionBSON(t *testing.T) {
	q := Question{
		ID:       "q1",
		Text:     "Comments",
		Required: true,
		Body:     &TextEntry{Format: "multiLine"},
	}
	data, err := bson.Marshal(q)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}
	var decoded Question
	if err := bson.Unmarshal(data, &decoded); err != nil {
		t.Errorf("unexpected error: %v", err)
		return
	}
	te, ok := decoded.Body.(*TextEntry)
	if !ok || te.Format != "multiLine" || decoded.ID != "q1" || !decoded.Required {
		t.Errorf("unexpected question: %+v", decoded)
	}
}

func TestNewQuestion(t *testing.T) {
	for _, qType := range QuestionTypes {
		t.Run(string(qType), func(t *testing.T) {
			q, err := NewQuestion(qType, sequentialIDs())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if q.Type() != qType {
				t.Errorf("unexpected type: %s", q.Type())
			}
			if q.ID != "id-1" {
				t.Errorf("unexpected id: %s", q.ID)
			}
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewQuestion("Carousel", sequentialIDs())
		if err == nil {
			t.Error("should produce error")
		}
	})
}
