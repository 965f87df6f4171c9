package discoveryclient

import (
	"context"
	"fmt"
	"net/http"
)

const (
	AGENT_TYPE_EXPLORER   = "explorer"
	AGENT_TYPE_INQUISITOR = "inquisitor"
	AGENT_TYPE_VALIDATOR  = "validator"

	DEFAULT_TIMEBOX_MINUTES = 30
	DEFAULT_MAX_TURNS       = 20
)

type InterviewInstance struct {
	ID               string   `json:"id"`
	ProjectID        string   `json:"projectId"`
	Name             string   `json:"name"`
	AgentType        string   `json:"agentType"`
	Objective        string   `json:"objective,omitempty"`
	GuidingQuestions []string `json:"guidingQuestions,omitempty"`
	TimeboxMinutes   int      `json:"timeboxMinutes"`
	MaxTurns         int      `json:"maxTurns"`
	Status           Status   `json:"status"`
	ParticipantCount int      `json:"participantCount"`
	SessionCount     int      `json:"sessionCount"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// InterviewConfig is the editable part of an instance.
type InterviewConfig struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	AgentType        string   `json:"agentType"`
	Objective        string   `json:"objective,omitempty"`
	GuidingQuestions []string `json:"guidingQuestions"`
	TimeboxMinutes   int      `json:"timeboxMinutes"`
	MaxTurns         int      `json:"maxTurns"`
}

type instanceWire struct {
	ID             flexID   `json:"id"`
	ProjectID      flexID   `json:"project_id"`
	Name           string   `json:"name"`
	AgentType      string   `json:"agent_type"`
	Objective      *string  `json:"objective"`
	Questions      []string `json:"questions"`
	TimeboxMinutes int      `json:"timebox_minutes"`
	MaxTurns       int      `json:"max_turns"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
}

func (w instanceWire) toInstance() InterviewInstance {
	instance := InterviewInstance{
		ID:               string(w.ID),
		ProjectID:        string(w.ProjectID),
		Name:             w.Name,
		AgentType:        w.AgentType,
		GuidingQuestions: w.Questions,
		TimeboxMinutes:   w.TimeboxMinutes,
		MaxTurns:         w.MaxTurns,
		Status:           MapStatus(w.Status),
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.CreatedAt,
	}
	if w.Objective != nil {
		instance.Objective = *w.Objective
	}
	if instance.AgentType == "" {
		instance.AgentType = AGENT_TYPE_EXPLORER
	}
	if instance.TimeboxMinutes == 0 {
		instance.TimeboxMinutes = DEFAULT_TIMEBOX_MINUTES
	}
	if instance.MaxTurns == 0 {
		instance.MaxTurns = DEFAULT_MAX_TURNS
	}
	return instance
}

func (c *Client) GetInstances(ctx context.Context, projectID string) ([]InterviewInstance, error) {
	var res []instanceWire
	if err := c.call(ctx, "failed to fetch instances", http.MethodGet, "/projects/"+projectID+"/instances", nil, nil, &res); err != nil {
		return nil, err
	}
	instances := make([]InterviewInstance, 0, len(res))
	for _, w := range res {
		instances = append(instances, w.toInstance())
	}
	return instances, nil
}

func (c *Client) GetInstance(ctx context.Context, instanceID string) (InterviewInstance, error) {
	var res instanceWire
	if err := c.call(ctx, "instance not found", http.MethodGet, "/instances/"+instanceID, nil, nil, &res); err != nil {
		return InterviewInstance{}, err
	}
	return res.toInstance(), nil
}

type CreateInstanceInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	AgentType   string `json:"agentType" validate:"omitempty,oneof=explorer inquisitor validator"`
}

func (c *Client) CreateInstance(ctx context.Context, projectID string, input CreateInstanceInput) (InterviewInstance, error) {
	if err := c.validate.Struct(input); err != nil {
		return InterviewInstance{}, err
	}
	pid, err := numericID(projectID)
	if err != nil {
		return InterviewInstance{}, fmt.Errorf("failed to create instance: %w", err)
	}

	payload := struct {
		ProjectID int     `json:"project_id"`
		Name      string  `json:"name"`
		AgentType string  `json:"agent_type"`
		Objective *string `json:"objective"`
	}{ProjectID: pid, Name: input.Name, AgentType: input.AgentType}
	if payload.AgentType == "" {
		payload.AgentType = AGENT_TYPE_EXPLORER
	}
	if input.Description != "" {
		payload.Objective = &input.Description
	}

	var res instanceWire
	if err := c.call(ctx, "failed to create instance", http.MethodPost, "/instances", c.userQuery(), payload, &res); err != nil {
		return InterviewInstance{}, err
	}
	return res.toInstance(), nil
}

// InstanceUpdate holds the fields to change; nil fields are left as they are.
type InstanceUpdate struct {
	Name             *string   `json:"name,omitempty"`
	AgentType        *string   `json:"agentType,omitempty"`
	Objective        *string   `json:"objective,omitempty"`
	GuidingQuestions *[]string `json:"guidingQuestions,omitempty"`
	TimeboxMinutes   *int      `json:"timeboxMinutes,omitempty"`
	MaxTurns         *int      `json:"maxTurns,omitempty"`
}

func (c *Client) UpdateInstance(ctx context.Context, instanceID string, update InstanceUpdate) (InterviewInstance, error) {
	payload := struct {
		Name           *string   `json:"name,omitempty"`
		AgentType      *string   `json:"agent_type,omitempty"`
		Objective      *string   `json:"objective,omitempty"`
		Questions      *[]string `json:"questions,omitempty"`
		TimeboxMinutes *int      `json:"timebox_minutes,omitempty"`
		MaxTurns       *int      `json:"max_turns,omitempty"`
	}{
		Name:           update.Name,
		AgentType:      update.AgentType,
		Objective:      update.Objective,
		Questions:      update.GuidingQuestions,
		TimeboxMinutes: update.TimeboxMinutes,
		MaxTurns:       update.MaxTurns,
	}

	var res instanceWire
	if err := c.call(ctx, "failed to update instance", http.MethodPatch, "/instances/"+instanceID, nil, payload, &res); err != nil {
		return InterviewInstance{}, err
	}
	return res.toInstance(), nil
}

func (c *Client) ActivateInstance(ctx context.Context, instanceID string) error {
	return c.call(ctx, "failed to activate instance", http.MethodPost, "/instances/"+instanceID+"/activate", nil, nil, nil)
}

func (c *Client) GetInterviewConfig(ctx context.Context, instanceID string) (InterviewConfig, error) {
	instance, err := c.GetInstance(ctx, instanceID)
	if err != nil {
		return InterviewConfig{}, err
	}
	questions := instance.GuidingQuestions
	if questions == nil {
		questions = []string{}
	}
	return InterviewConfig{
		ID:               instance.ID,
		Name:             instance.Name,
		AgentType:        instance.AgentType,
		Objective:        instance.Objective,
		GuidingQuestions: questions,
		TimeboxMinutes:   instance.TimeboxMinutes,
		MaxTurns:         instance.MaxTurns,
	}, nil
}
