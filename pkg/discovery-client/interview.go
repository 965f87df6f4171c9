package discoveryclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type InterviewDetails struct {
	Participant Participant       `json:"participant"`
	Instance    InterviewInstance `json:"instance"`
}

type StartSessionResponse struct {
	SessionID      int    `json:"sessionId"`
	OpeningMessage string `json:"openingMessage"`
	AgentType      string `json:"agentType"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	TurnCount int    `json:"turnCount"`
	SessionID int    `json:"sessionId"`
}

type EndSessionResponse struct {
	Status    string `json:"status"`
	TurnCount int    `json:"turnCount"`
}

type InterviewMessage struct {
	ID         string `json:"id"`
	SessionID  string `json:"sessionId"`
	Role       string `json:"role"` // user, assistant or system
	Content    string `json:"content"`
	AudioInput bool   `json:"audioInput"`
	Timestamp  string `json:"timestamp"`
}

type Insight struct {
	ID          string  `json:"id"`
	SessionID   string  `json:"sessionId"`
	InsightType string  `json:"insightType"`
	Content     string  `json:"content"`
	Confidence  float64 `json:"confidence"`
	ExtractedAt string  `json:"extractedAt"`
}

func sessionPath(sessionID int, action string) string {
	return "/sessions/" + strconv.Itoa(sessionID) + "/" + action
}

func (c *Client) GetInterviewByToken(ctx context.Context, token string) (InterviewDetails, error) {
	var res struct {
		Participant participantWire `json:"participant"`
		Instance    instanceWire    `json:"instance"`
	}
	if err := c.call(ctx, "invalid interview token", http.MethodGet, "/interview/"+url.PathEscape(token), nil, nil, &res); err != nil {
		return InterviewDetails{}, err
	}
	return InterviewDetails{
		Participant: res.Participant.toParticipant(),
		Instance:    res.Instance.toInstance(),
	}, nil
}

func (c *Client) StartSession(ctx context.Context, token string) (StartSessionResponse, error) {
	var res struct {
		SessionID      int    `json:"session_id"`
		OpeningMessage string `json:"opening_message"`
		AgentType      string `json:"agent_type"`
	}
	if err := c.call(ctx, "failed to start interview", http.MethodPost, "/interview/"+url.PathEscape(token)+"/start", nil, nil, &res); err != nil {
		return StartSessionResponse{}, err
	}
	return StartSessionResponse{
		SessionID:      res.SessionID,
		OpeningMessage: res.OpeningMessage,
		AgentType:      res.AgentType,
	}, nil
}

func (c *Client) SendMessage(ctx context.Context, sessionID int, message string, audioInput bool) (ChatResponse, error) {
	payload := struct {
		Message    string `json:"message"`
		AudioInput bool   `json:"audio_input"`
	}{Message: message, AudioInput: audioInput}

	var res struct {
		Response  string `json:"response"`
		TurnCount int    `json:"turn_count"`
		SessionID int    `json:"session_id"`
	}
	if err := c.call(ctx, "failed to send message", http.MethodPost, sessionPath(sessionID, "chat"), nil, payload, &res); err != nil {
		return ChatResponse{}, err
	}
	return ChatResponse{Response: res.Response, TurnCount: res.TurnCount, SessionID: res.SessionID}, nil
}

func (c *Client) EndSession(ctx context.Context, sessionID int) (EndSessionResponse, error) {
	var res struct {
		Status    string `json:"status"`
		TurnCount int    `json:"turn_count"`
	}
	if err := c.call(ctx, "failed to end session", http.MethodPost, sessionPath(sessionID, "end"), nil, nil, &res); err != nil {
		return EndSessionResponse{}, err
	}
	return EndSessionResponse{Status: res.Status, TurnCount: res.TurnCount}, nil
}

func (c *Client) GetSessionMessages(ctx context.Context, sessionID int) ([]InterviewMessage, error) {
	var res []struct {
		ID         flexID `json:"id"`
		SessionID  flexID `json:"session_id"`
		Role       string `json:"role"`
		Content    string `json:"content"`
		AudioInput bool   `json:"audio_input"`
		Timestamp  string `json:"timestamp"`
	}
	if err := c.call(ctx, "failed to fetch messages", http.MethodGet, sessionPath(sessionID, "messages"), nil, nil, &res); err != nil {
		return nil, err
	}
	messages := make([]InterviewMessage, 0, len(res))
	for _, m := range res {
		messages = append(messages, InterviewMessage{
			ID:         string(m.ID),
			SessionID:  string(m.SessionID),
			Role:       m.Role,
			Content:    m.Content,
			AudioInput: m.AudioInput,
			Timestamp:  m.Timestamp,
		})
	}
	return messages, nil
}

func (c *Client) GetSessionInsights(ctx context.Context, sessionID int) ([]Insight, error) {
	var res []struct {
		ID          flexID  `json:"id"`
		SessionID   flexID  `json:"session_id"`
		InsightType string  `json:"insight_type"`
		Content     string  `json:"content"`
		Confidence  float64 `json:"confidence"`
		ExtractedAt string  `json:"extracted_at"`
	}
	if err := c.call(ctx, "failed to fetch insights", http.MethodGet, sessionPath(sessionID, "insights"), nil, nil, &res); err != nil {
		return nil, err
	}
	insights := make([]Insight, 0, len(res))
	for _, i := range res {
		insights = append(insights, Insight{
			ID:          string(i.ID),
			SessionID:   string(i.SessionID),
			InsightType: i.InsightType,
			Content:     i.Content,
			Confidence:  i.Confidence,
			ExtractedAt: i.ExtractedAt,
		})
	}
	return insights, nil
}
