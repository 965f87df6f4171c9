package types

import (
	"encoding/json"
	"log/slog"
)

type Survey struct {
	ID                   string                `bson:"id" json:"id"`
	Name                 string                `bson:"name" json:"name"`
	Blocks               []Block               `bson:"blocks" json:"blocks"`
	WelcomePage          WelcomePage           `bson:"welcomePage" json:"welcomePage"`
	ConsentPage          ConsentPage           `bson:"consentPage" json:"consentPage"`
	ThankYouPage         ThankYouPage          `bson:"thankYouPage" json:"thankYouPage"`
	LookAndFeel          LookAndFeel           `bson:"lookAndFeel" json:"lookAndFeel"`
	Settings             SurveySettings        `bson:"settings" json:"settings"`
	EmbeddedDataSchema   *EmbeddedDataSchema   `bson:"embeddedDataSchema,omitempty" json:"embeddedDataSchema,omitempty"`
	DimensionDefinitions []DimensionDefinition `bson:"dimensionDefinitions,omitempty" json:"dimensionDefinitions,omitempty"`
	CreatedAt            string                `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt            string                `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type Block struct {
	ID           string         `bson:"id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Description  string         `bson:"description,omitempty" json:"description,omitempty"`
	Questions    []Question     `bson:"questions" json:"questions"`
	Randomize    bool           `bson:"randomize,omitempty" json:"randomize,omitempty"` // legacy, use Settings.RandomizeQuestions
	DisplayLogic *DisplayLogic  `bson:"displayLogic,omitempty" json:"displayLogic,omitempty"`
	Settings     *BlockSettings `bson:"settings,omitempty" json:"settings,omitempty"`
}

type BlockSettings struct {
	RandomizeQuestions bool   `bson:"randomizeQuestions,omitempty" json:"randomizeQuestions,omitempty"`
	RandomizeOptions   bool   `bson:"randomizeOptions,omitempty" json:"randomizeOptions,omitempty"`
	StartOnNewPage     bool   `bson:"startOnNewPage,omitempty" json:"startOnNewPage,omitempty"`
	RequiredQuestions  string `bson:"requiredQuestions,omitempty" json:"requiredQuestions,omitempty"` // all or inherit
}

type WelcomePage struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
}

type ConsentPage struct {
	Enabled   bool   `bson:"enabled" json:"enabled"`
	Statement string `bson:"statement" json:"statement"`
}

type ThankYouPage struct {
	Enabled       bool   `bson:"enabled" json:"enabled"`
	Title         string `bson:"title" json:"title"`
	Content       string `bson:"content" json:"content"`
	RedirectURL   string `bson:"redirectUrl,omitempty" json:"redirectUrl,omitempty"`
	RedirectDelay *int   `bson:"redirectDelay,omitempty" json:"redirectDelay,omitempty"`
}

// LookAndFeel is styling configuration owned by the UI; the builder only merges keys.
type LookAndFeel map[string]interface{}

type Keyword struct {
	Term       string `bson:"term" json:"term"`
	Definition string `bson:"definition" json:"definition"`
}

type SurveySettings struct {
	AnonymityThreshold       int       `bson:"anonymityThreshold" json:"anonymityThreshold"`
	ConsentRequired          bool      `bson:"consentRequired" json:"consentRequired"`
	Keywords                 []Keyword `bson:"keywords" json:"keywords"`
	ItemsPerPage             *int      `bson:"itemsPerPage,omitempty" json:"itemsPerPage,omitempty"`
	GlobalRandomizeQuestions bool      `bson:"globalRandomizeQuestions,omitempty" json:"globalRandomizeQuestions,omitempty"`
	GlobalRandomizeOptions   bool      `bson:"globalRandomizeOptions,omitempty" json:"globalRandomizeOptions,omitempty"`
}

type DimensionDefinition struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Color       string `bson:"color,omitempty" json:"color,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// AllQuestions returns the questions of all blocks in document order.
func (s *Survey) AllQuestions() []Question {
	if s == nil {
		return nil
	}
	questions := []Question{}
	for _, b := range s.Blocks {
		questions = append(questions, b.Questions...)
	}
	return questions
}

func (s *Survey) FindBlock(blockID string) (int, bool) {
	for i, b := range s.Blocks {
		if b.ID == blockID {
			return i, true
		}
	}
	return -1, false
}

func (b Block) FindQuestion(questionID string) (int, bool) {
	for i, q := range b.Questions {
		if q.ID == questionID {
			return i, true
		}
	}
	return -1, false
}

// EmbeddedFields returns the declared embedded data fields, or nil if no schema is set.
func (s *Survey) EmbeddedFields() []EmbeddedDataField {
	if s == nil || s.EmbeddedDataSchema == nil {
		return nil
	}
	return s.EmbeddedDataSchema.Fields
}

// Clone returns a deep copy of the survey.
func (s *Survey) Clone() *Survey {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		slog.Error("unexpected error when cloning survey", slog.String("surveyID", s.ID), slog.String("error", err.Error()))
		return nil
	}
	var c Survey
	if err := json.Unmarshal(data, &c); err != nil {
		slog.Error("unexpected error when cloning survey", slog.String("surveyID", s.ID), slog.String("error", err.Error()))
		return nil
	}
	return &c
}
