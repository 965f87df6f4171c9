package builder

import (
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

// Patch types carry only the fields being changed; nil fields keep their current value.

type SurveyPatch struct {
	ID                   *string                      `json:"id,omitempty"`
	Name                 *string                      `json:"name,omitempty"`
	Blocks               *[]types.Block               `json:"blocks,omitempty"`
	WelcomePage          *types.WelcomePage           `json:"welcomePage,omitempty"`
	ConsentPage          *types.ConsentPage           `json:"consentPage,omitempty"`
	ThankYouPage         *types.ThankYouPage          `json:"thankYouPage,omitempty"`
	LookAndFeel          *types.LookAndFeel           `json:"lookAndFeel,omitempty"`
	Settings             *types.SurveySettings        `json:"settings,omitempty"`
	EmbeddedDataSchema   *types.EmbeddedDataSchema    `json:"embeddedDataSchema,omitempty"`
	DimensionDefinitions *[]types.DimensionDefinition `json:"dimensionDefinitions,omitempty"`
	CreatedAt            *string                      `json:"createdAt,omitempty"`
	UpdatedAt            *string                      `json:"updatedAt,omitempty"`
}

func (p SurveyPatch) IsEmpty() bool {
	return p == SurveyPatch{}
}

// Apply returns a copy of s with the patched fields replaced.
func (p SurveyPatch) Apply(s types.Survey) types.Survey {
	if p.ID != nil {
		s.ID = *p.ID
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Blocks != nil {
		s.Blocks = *p.Blocks
	}
	if p.WelcomePage != nil {
		s.WelcomePage = *p.WelcomePage
	}
	if p.ConsentPage != nil {
		s.ConsentPage = *p.ConsentPage
	}
	if p.ThankYouPage != nil {
		s.ThankYouPage = *p.ThankYouPage
	}
	if p.LookAndFeel != nil {
		s.LookAndFeel = *p.LookAndFeel
	}
	if p.Settings != nil {
		s.Settings = *p.Settings
	}
	if p.EmbeddedDataSchema != nil {
		schema := *p.EmbeddedDataSchema
		s.EmbeddedDataSchema = &schema
	}
	if p.DimensionDefinitions != nil {
		s.DimensionDefinitions = *p.DimensionDefinitions
	}
	if p.CreatedAt != nil {
		s.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		s.UpdatedAt = *p.UpdatedAt
	}
	return s
}

type WelcomePagePatch struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (p WelcomePagePatch) IsEmpty() bool {
	return p == WelcomePagePatch{}
}

func (p WelcomePagePatch) Apply(page types.WelcomePage) types.WelcomePage {
	if p.Enabled != nil {
		page.Enabled = *p.Enabled
	}
	if p.Title != nil {
		page.Title = *p.Title
	}
	if p.Content != nil {
		page.Content = *p.Content
	}
	return page
}

type ConsentPagePatch struct {
	Enabled   *bool   `json:"enabled,omitempty"`
	Statement *string `json:"statement,omitempty"`
}

func (p ConsentPagePatch) IsEmpty() bool {
	return p == ConsentPagePatch{}
}

func (p ConsentPagePatch) Apply(page types.ConsentPage) types.ConsentPage {
	if p.Enabled != nil {
		page.Enabled = *p.Enabled
	}
	if p.Statement != nil {
		page.Statement = *p.Statement
	}
	return page
}

type ThankYouPagePatch struct {
	Enabled       *bool   `json:"enabled,omitempty"`
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	RedirectURL   *string `json:"redirectUrl,omitempty"`
	RedirectDelay *int    `json:"redirectDelay,omitempty"`
}

func (p ThankYouPagePatch) IsEmpty() bool {
	return p == ThankYouPagePatch{}
}

func (p ThankYouPagePatch) Apply(page types.ThankYouPage) types.ThankYouPage {
	if p.Enabled != nil {
		page.Enabled = *p.Enabled
	}
	if p.Title != nil {
		page.Title = *p.Title
	}
	if p.Content != nil {
		page.Content = *p.Content
	}
	if p.RedirectURL != nil {
		page.RedirectURL = *p.RedirectURL
	}
	if p.RedirectDelay != nil {
		delay := *p.RedirectDelay
		page.RedirectDelay = &delay
	}
	return page
}

type SettingsPatch struct {
	AnonymityThreshold       *int             `json:"anonymityThreshold,omitempty"`
	ConsentRequired          *bool            `json:"consentRequired,omitempty"`
	Keywords                 *[]types.Keyword `json:"keywords,omitempty"`
	ItemsPerPage             *int             `json:"itemsPerPage,omitempty"`
	GlobalRandomizeQuestions *bool            `json:"globalRandomizeQuestions,omitempty"`
	GlobalRandomizeOptions   *bool            `json:"globalRandomizeOptions,omitempty"`
}

func (p SettingsPatch) IsEmpty() bool {
	return p == SettingsPatch{}
}

func (p SettingsPatch) Apply(settings types.SurveySettings) types.SurveySettings {
	if p.AnonymityThreshold != nil {
		settings.AnonymityThreshold = *p.AnonymityThreshold
	}
	if p.ConsentRequired != nil {
		settings.ConsentRequired = *p.ConsentRequired
	}
	if p.Keywords != nil {
		settings.Keywords = *p.Keywords
	}
	if p.ItemsPerPage != nil {
		items := *p.ItemsPerPage
		settings.ItemsPerPage = &items
	}
	if p.GlobalRandomizeQuestions != nil {
		settings.GlobalRandomizeQuestions = *p.GlobalRandomizeQuestions
	}
	if p.GlobalRandomizeOptions != nil {
		settings.GlobalRandomizeOptions = *p.GlobalRandomizeOptions
	}
	return settings
}

// mergeLookAndFeel copies the current keys and overlays the patch.
func mergeLookAndFeel(current types.LookAndFeel, patch map[string]interface{}) types.LookAndFeel {
	merged := types.LookAndFeel{}
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
