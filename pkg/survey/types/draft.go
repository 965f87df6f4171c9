package types

import (
	"errors"
	"time"
)

// ErrDraftNotFound is returned by draft stores when no draft exists for a survey.
var ErrDraftNotFound = errors.New("draft not found")

// SurveyDraft is an autosaved snapshot of a survey being edited.
type SurveyDraft struct {
	Survey  *Survey   `bson:"survey" json:"survey"`
	SavedAt time.Time `bson:"savedAt" json:"savedAt"`
}
