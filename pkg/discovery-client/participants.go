package discoveryclient

import (
	"context"
	"fmt"
	"net/http"
)

type Participant struct {
	ID          string `json:"id"`
	InstanceID  string `json:"instanceId"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Background  string `json:"background,omitempty"`
	UniqueToken string `json:"uniqueToken"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type participantWire struct {
	ID          flexID  `json:"id"`
	InstanceID  flexID  `json:"instance_id"`
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	Background  *string `json:"background"`
	UniqueToken string  `json:"unique_token"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func (w participantWire) toParticipant() Participant {
	p := Participant{
		ID:          string(w.ID),
		InstanceID:  string(w.InstanceID),
		Email:       w.Email,
		UniqueToken: w.UniqueToken,
		Status:      w.Status,
		CreatedAt:   w.CreatedAt,
	}
	if w.Name != nil {
		p.Name = *w.Name
	}
	if w.Background != nil {
		p.Background = *w.Background
	}
	return p
}

func (c *Client) GetParticipants(ctx context.Context, instanceID string) ([]Participant, error) {
	var res []participantWire
	if err := c.call(ctx, "failed to fetch participants", http.MethodGet, "/instances/"+instanceID+"/participants", nil, nil, &res); err != nil {
		return nil, err
	}
	participants := make([]Participant, 0, len(res))
	for _, w := range res {
		participants = append(participants, w.toParticipant())
	}
	return participants, nil
}

type AddParticipantInput struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name,omitempty"`
	Background string `json:"background,omitempty"`
}

func (c *Client) AddParticipant(ctx context.Context, instanceID string, input AddParticipantInput) (Participant, error) {
	if err := c.validate.Struct(input); err != nil {
		return Participant{}, err
	}
	var res participantWire
	if err := c.call(ctx, "failed to add participant", http.MethodPost, "/instances/"+instanceID+"/participants", nil, input, &res); err != nil {
		return Participant{}, err
	}
	p := res.toParticipant()
	p.InstanceID = instanceID
	return p, nil
}

// CreatePreviewSession activates the instance and adds a throwaway participant. It returns the
// participant's interview token.
func (c *Client) CreatePreviewSession(ctx context.Context, instanceID string, previewNumber int) (string, error) {
	if err := c.ActivateInstance(ctx, instanceID); err != nil {
		return "", err
	}
	participant, err := c.AddParticipant(ctx, instanceID, AddParticipantInput{
		Email:      fmt.Sprintf("preview.%d.%d@example.com", previewNumber, c.now().UnixMilli()),
		Name:       fmt.Sprintf("Preview Session %d", previewNumber),
		Background: "Preview/Test Session",
	})
	if err != nil {
		return "", err
	}
	return participant.UniqueToken, nil
}
