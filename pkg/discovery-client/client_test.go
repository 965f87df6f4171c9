package discoveryclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

func newTestClient(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	requests := []recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		requests = append(requests, rec)

		handler, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{RootURL: server.URL})
	require.NoError(t, err)
	client.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return client, &requests
}

func respond(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func respondStatus(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, STATUS_DRAFT, MapStatus("draft"))
	assert.Equal(t, STATUS_LIVE, MapStatus("active"))
	assert.Equal(t, STATUS_CLOSED, MapStatus("closed"))
	assert.Equal(t, STATUS_ARCHIVED, MapStatus("archived"))
	assert.Equal(t, STATUS_DRAFT, MapStatus("paused"))
	assert.Equal(t, STATUS_DRAFT, MapStatus(""))

	backend, ok := BackendStatus(STATUS_LIVE)
	assert.True(t, ok)
	assert.Equal(t, "active", backend)
	_, ok = BackendStatus("Paused")
	assert.False(t, ok)
}

func TestProjects(t *testing.T) {
	client, requests := newTestClient(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"GET /api/projects":     respond(`[{"id":1,"name":"Onboarding","description":null,"status":"active","created_at":"2026-01-01T00:00:00","updated_at":"2026-01-02T00:00:00"}]`),
		"POST /api/projects":    respond(`{"id":2,"name":"Churn","description":"Why users leave","status":"draft","created_at":"c","updated_at":"u"}`),
		"GET /api/projects/2":   respond(`{"id":"2","name":"Churn","status":"archived"}`),
		"PATCH /api/projects/2": respond(`{"id":2,"name":"Churn","status":"closed"}`),
	})
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		projects, err := client.GetProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, Project{
			ID:        "1",
			Name:      "Onboarding",
			Type:      DEFAULT_PROJECT_TYPE,
			Status:    STATUS_LIVE,
			Owner:     DEFAULT_USER_EMAIL,
			CreatedAt: "2026-01-01T00:00:00",
			UpdatedAt: "2026-01-02T00:00:00",
		}, projects[0])
		assert.Equal(t, "user_email=admin%40discovery.local", (*requests)[len(*requests)-1].Query)
	})

	t.Run("create", func(t *testing.T) {
		p, err := client.CreateProject(ctx, CreateProjectInput{Name: "Churn", Description: "Why users leave", Type: "Product"})
		require.NoError(t, err)
		assert.Equal(t, "2", p.ID)
		assert.Equal(t, "Product", p.Type)
		assert.Equal(t, STATUS_DRAFT, p.Status)
		last := (*requests)[len(*requests)-1]
		assert.Equal(t, map[string]interface{}{"name": "Churn", "description": "Why users leave"}, last.Body)
	})

	t.Run("create without name", func(t *testing.T) {
		count := len(*requests)
		_, err := client.CreateProject(ctx, CreateProjectInput{})
		assert.Error(t, err)
		assert.Len(t, *requests, count)
	})

	t.Run("get", func(t *testing.T) {
		p, err := client.GetProject(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "2", p.ID)
		assert.Equal(t, STATUS_ARCHIVED, p.Status)
	})

	t.Run("update maps status back", func(t *testing.T) {
		status := STATUS_CLOSED
		p, err := client.UpdateProject(ctx, "2", ProjectUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, STATUS_CLOSED, p.Status)
		last := (*requests)[len(*requests)-1]
		assert.Equal(t, map[string]interface{}{"status": "closed"}, last.Body)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetProject(ctx, "99")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "project not found: Not Found", err.Error())
	})
}

func TestInstances(t *testing.T) {
	client, requests := newTestClient(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"GET /api/projects/1/instances":  respond(`[{"id":5,"project_id":1,"name":"Pilot","agent_type":null,"objective":null,"questions":null,"timebox_minutes":0,"max_turns":0,"status":"draft","created_at":"c"}]`),
		"GET /api/instances/5":           respond(`{"id":5,"project_id":1,"name":"Pilot","agent_type":"validator","objective":"Validate","questions":["Why?"],"timebox_minutes":45,"max_turns":10,"status":"active","created_at":"c"}`),
		"POST /api/instances":            respond(`{"id":6,"project_id":1,"name":"New","agent_type":"explorer","status":"draft","created_at":"c"}`),
		"PATCH /api/instances/5":         respond(`{"id":5,"project_id":1,"name":"Pilot","timebox_minutes":15,"status":"draft"}`),
		"POST /api/instances/5/activate": respond(`{"status":"active"}`),
	})
	ctx := context.Background()

	t.Run("list applies defaults", func(t *testing.T) {
		instances, err := client.GetInstances(ctx, "1")
		require.NoError(t, err)
		require.Len(t, instances, 1)
		i := instances[0]
		assert.Equal(t, "5", i.ID)
		assert.Equal(t, "1", i.ProjectID)
		assert.Equal(t, AGENT_TYPE_EXPLORER, i.AgentType)
		assert.Equal(t, DEFAULT_TIMEBOX_MINUTES, i.TimeboxMinutes)
		assert.Equal(t, DEFAULT_MAX_TURNS, i.MaxTurns)
		assert.Equal(t, "c", i.UpdatedAt)
	})

	t.Run("config", func(t *testing.T) {
		conf, err := client.GetInterviewConfig(ctx, "5")
		require.NoError(t, err)
		assert.Equal(t, InterviewConfig{
			ID:               "5",
			Name:             "Pilot",
			AgentType:        AGENT_TYPE_VALIDATOR,
			Objective:        "Validate",
			GuidingQuestions: []string{"Why?"},
			TimeboxMinutes:   45,
			MaxTurns:         10,
		}, conf)
	})

	t.Run("create sends snake case", func(t *testing.T) {
		_, err := client.CreateInstance(ctx, "1", CreateInstanceInput{Name: "New", Description: "Learn"})
		require.NoError(t, err)
		last := (*requests)[len(*requests)-1]
		assert.Equal(t, map[string]interface{}{
			"project_id": float64(1),
			"name":       "New",
			"agent_type": "explorer",
			"objective":  "Learn",
		}, last.Body)
	})

	t.Run("create rejects bad input", func(t *testing.T) {
		_, err := client.CreateInstance(ctx, "abc", CreateInstanceInput{Name: "New"})
		assert.Error(t, err)
		_, err = client.CreateInstance(ctx, "1", CreateInstanceInput{Name: "New", AgentType: "poet"})
		assert.Error(t, err)
	})

	t.Run("update sends only set fields", func(t *testing.T) {
		timebox := 15
		i, err := client.UpdateInstance(ctx, "5", InstanceUpdate{TimeboxMinutes: &timebox})
		require.NoError(t, err)
		assert.Equal(t, 15, i.TimeboxMinutes)
		last := (*requests)[len(*requests)-1]
		assert.Equal(t, map[string]interface{}{"timebox_minutes": float64(15)}, last.Body)
	})

	t.Run("activate failure", func(t *testing.T) {
		err := client.ActivateInstance(ctx, "7")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to activate instance")
	})
}

func TestParticipantsAndPreview(t *testing.T) {
	client, requests := newTestClient(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"GET /api/instances/5/participants":  respond(`[{"id":1,"instance_id":5,"email":"a@b.c","name":null,"background":"PM","unique_token":"tok","status":"invited","created_at":"c"}]`),
		"POST /api/instances/5/participants": respond(`{"id":2,"email":"preview@example.com","unique_token":"preview-token","status":"invited"}`),
		"POST /api/instances/5/activate":     respond(`{"status":"active"}`),
	})
	ctx := context.Background()

	participants, err := client.GetParticipants(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, []Participant{{
		ID: "1", InstanceID: "5", Email: "a@b.c", Background: "PM", UniqueToken: "tok", Status: "invited", CreatedAt: "c",
	}}, participants)

	_, err = client.AddParticipant(ctx, "5", AddParticipantInput{Email: "not-an-email"})
	assert.Error(t, err)

	token, err := client.CreatePreviewSession(ctx, "5", 3)
	require.NoError(t, err)
	assert.Equal(t, "preview-token", token)

	last := (*requests)[len(*requests)-1]
	assert.Equal(t, "/api/instances/5/participants", last.Path)
	assert.Equal(t, "preview.3.1700000000000@example.com", last.Body["email"])
	assert.Equal(t, "Preview Session 3", last.Body["name"])
	assert.Equal(t, "/api/instances/5/activate", (*requests)[len(*requests)-2].Path)
}

func TestInterview(t *testing.T) {
	client, requests := newTestClient(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"GET /api/interview/tok":        respond(`{"participant":{"id":1,"instance_id":5,"email":"a@b.c","unique_token":"tok","status":"invited"},"instance":{"id":5,"name":"Pilot","agent_type":"explorer","status":"active"}}`),
		"POST /api/interview/tok/start": respond(`{"session_id":9,"opening_message":"Hi!","agent_type":"explorer"}`),
		"POST /api/interview/old/start": respondStatus(http.StatusBadRequest, `{"detail":"Interview is not active"}`),
		"POST /api/sessions/9/chat":     respond(`{"response":"Tell me more","turn_count":1,"session_id":9}`),
		"POST /api/sessions/9/end":      respond(`{"status":"completed","turn_count":4}`),
		"GET /api/sessions/9/messages":  respond(`[{"id":1,"session_id":9,"role":"assistant","content":"Hi!","audio_input":false,"timestamp":"t"}]`),
		"GET /api/sessions/9/insights":  respond(`[{"id":3,"session_id":9,"insight_type":"pain_point","content":"Slow","confidence":0.8,"extracted_at":"t"}]`),
	})
	ctx := context.Background()

	details, err := client.GetInterviewByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", details.Participant.UniqueToken)
	assert.Equal(t, STATUS_LIVE, details.Instance.Status)

	started, err := client.StartSession(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, StartSessionResponse{SessionID: 9, OpeningMessage: "Hi!", AgentType: "explorer"}, started)

	_, err = client.StartSession(ctx, "old")
	require.Error(t, err)
	assert.Equal(t, "failed to start interview: Interview is not active", err.Error())

	chat, err := client.SendMessage(ctx, 9, "It is slow", true)
	require.NoError(t, err)
	assert.Equal(t, ChatResponse{Response: "Tell me more", TurnCount: 1, SessionID: 9}, chat)
	last := (*requests)[len(*requests)-1]
	assert.Equal(t, map[string]interface{}{"message": "It is slow", "audio_input": true}, last.Body)

	ended, err := client.EndSession(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, EndSessionResponse{Status: "completed", TurnCount: 4}, ended)

	messages, err := client.GetSessionMessages(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []InterviewMessage{{ID: "1", SessionID: "9", Role: "assistant", Content: "Hi!", Timestamp: "t"}}, messages)

	insights, err := client.GetSessionInsights(ctx, 9)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "pain_point", insights[0].InsightType)
	assert.InDelta(t, 0.8, insights[0].Confidence, 0.0001)

	_, err = client.GetInterviewByToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
