package apihandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	mw "github.com/case-framework/discovery-builder/pkg/apihelpers/middlewares"
	"github.com/gin-gonic/gin"
)

// AddInterviewAPI forwards interview sessions to the discovery backend, so survey authors can try
// an interview from the builder.
func (h *HttpEndpoints) AddInterviewAPI(rg *gin.RouterGroup) {
	if h.discoveryClient == nil {
		slog.Warn("discovery backend not configured, interview endpoints disabled")
		return
	}

	interviewGroup := rg.Group("/interview/:token")
	interviewGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		interviewGroup.GET("/", h.getInterviewByToken)
		interviewGroup.POST("/start", h.startInterviewSession)
	}

	sessionsGroup := rg.Group("/interview-sessions/:sessionID")
	sessionsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		sessionsGroup.POST("/chat", mw.RequirePayload(), h.sendInterviewMessage)
		sessionsGroup.POST("/end", h.endInterviewSession)
		sessionsGroup.GET("/messages", h.getInterviewMessages)
		sessionsGroup.GET("/insights", h.getInterviewInsights)
	}
}

func interviewSessionID(c *gin.Context) (int, bool) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil || sessionID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sessionID"})
		return 0, false
	}
	return sessionID, true
}

func (h *HttpEndpoints) getInterviewByToken(c *gin.Context) {
	token, ok := pathID(c, "token")
	if !ok {
		return
	}
	details, err := h.discoveryClient.GetInterviewByToken(c.Request.Context(), token)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *HttpEndpoints) startInterviewSession(c *gin.Context) {
	token, ok := pathID(c, "token")
	if !ok {
		return
	}
	res, err := h.discoveryClient.StartSession(c.Request.Context(), token)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type chatReq struct {
	Message    string `json:"message" binding:"required"`
	AudioInput bool   `json:"audioInput"`
}

func (h *HttpEndpoints) sendInterviewMessage(c *gin.Context) {
	sessionID, ok := interviewSessionID(c)
	if !ok {
		return
	}
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	res, err := h.discoveryClient.SendMessage(c.Request.Context(), sessionID, req.Message, req.AudioInput)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HttpEndpoints) endInterviewSession(c *gin.Context) {
	sessionID, ok := interviewSessionID(c)
	if !ok {
		return
	}
	res, err := h.discoveryClient.EndSession(c.Request.Context(), sessionID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HttpEndpoints) getInterviewMessages(c *gin.Context) {
	sessionID, ok := interviewSessionID(c)
	if !ok {
		return
	}
	messages, err := h.discoveryClient.GetSessionMessages(c.Request.Context(), sessionID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *HttpEndpoints) getInterviewInsights(c *gin.Context) {
	sessionID, ok := interviewSessionID(c)
	if !ok {
		return
	}
	insights, err := h.discoveryClient.GetSessionInsights(c.Request.Context(), sessionID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
