package discoveryclient

import (
	"context"
	"errors"
	"net/http"
)

const DEFAULT_PROJECT_TYPE = "Customer Experience"

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Status      Status `json:"status"`
	Owner       string `json:"owner"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type projectWire struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (c *Client) toProject(p projectWire, projectType string) Project {
	if projectType == "" {
		projectType = DEFAULT_PROJECT_TYPE
	}
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return Project{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: description,
		Type:        projectType,
		Status:      MapStatus(p.Status),
		Owner:       c.userEmail,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var res []projectWire
	if err := c.call(ctx, "failed to fetch projects", http.MethodGet, "/projects", c.userQuery(), nil, &res); err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(res))
	for _, p := range res {
		projects = append(projects, c.toProject(p, ""))
	}
	return projects, nil
}

type CreateProjectInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (Project, error) {
	if err := c.validate.Struct(input); err != nil {
		return Project{}, err
	}
	payload := struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}{Name: input.Name}
	if input.Description != "" {
		payload.Description = &input.Description
	}

	var res projectWire
	if err := c.call(ctx, "failed to create project", http.MethodPost, "/projects", c.userQuery(), payload, &res); err != nil {
		return Project{}, err
	}
	return c.toProject(res, input.Type), nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (Project, error) {
	var res projectWire
	if err := c.call(ctx, "project not found", http.MethodGet, "/projects/"+projectID, nil, nil, &res); err != nil {
		return Project{}, err
	}
	return c.toProject(res, ""), nil
}

// ProjectUpdate holds the fields to change; nil fields are left as they are.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, update ProjectUpdate) (Project, error) {
	payload := struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		Status      *string `json:"status,omitempty"`
	}{Name: update.Name, Description: update.Description}
	if update.Status != nil {
		status, ok := BackendStatus(*update.Status)
		if !ok {
			return Project{}, errors.New("unknown project status: " + string(*update.Status))
		}
		payload.Status = &status
	}

	var res projectWire
	if err := c.call(ctx, "failed to update project", http.MethodPatch, "/projects/"+projectID, nil, payload, &res); err != nil {
		return Project{}, err
	}
	projectType := ""
	if update.Type != nil {
		projectType = *update.Type
	}
	return c.toProject(res, projectType), nil
}
