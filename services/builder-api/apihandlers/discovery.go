package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	mw "github.com/case-framework/discovery-builder/pkg/apihelpers/middlewares"
	discoveryclient "github.com/case-framework/discovery-builder/pkg/discovery-client"
	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AddDiscoveryAPI forwards project and interview instance management to the discovery backend.
func (h *HttpEndpoints) AddDiscoveryAPI(rg *gin.RouterGroup) {
	if h.discoveryClient == nil {
		slog.Warn("discovery backend not configured, project endpoints disabled")
		return
	}

	projectsGroup := rg.Group("/projects")
	projectsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		projectsGroup.GET("/", h.getProjects)
		projectsGroup.POST("/", mw.RequirePayload(), h.createProject)
		projectsGroup.GET("/:projectID", h.getProject)
		projectsGroup.PATCH("/:projectID", mw.RequirePayload(), h.updateProject)
		projectsGroup.GET("/:projectID/instances", h.getInstances)
		projectsGroup.POST("/:projectID/instances", mw.RequirePayload(), h.createInstance)
	}

	instancesGroup := rg.Group("/instances")
	instancesGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		instancesGroup.GET("/:instanceID", h.getInstance)
		instancesGroup.PATCH("/:instanceID", mw.RequirePayload(), h.updateInstance)
		instancesGroup.POST("/:instanceID/activate", h.activateInstance)
		instancesGroup.GET("/:instanceID/config", h.getInterviewConfig)
		instancesGroup.GET("/:instanceID/participants", h.getParticipants)
		instancesGroup.POST("/:instanceID/participants", mw.RequirePayload(), h.addParticipant)
		instancesGroup.POST("/:instanceID/preview", h.createPreviewSession)
	}
}

// writeDiscoveryError maps client errors: validation problems and backend 4xx answers are passed
// on, everything else is reported as a bad gateway.
func writeDiscoveryError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var apiErr *discoveryclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Error()})
		return
	}
	slog.Error("discovery backend request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !utils.IsURLSafe(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return "", false
	}
	return id, true
}

func (h *HttpEndpoints) getProjects(c *gin.Context) {
	projects, err := h.discoveryClient.GetProjects(c.Request.Context())
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *HttpEndpoints) createProject(c *gin.Context) {
	var req discoveryclient.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	project, err := h.discoveryClient.CreateProject(c.Request.Context(), req)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *HttpEndpoints) getProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	project, err := h.discoveryClient.GetProject(c.Request.Context(), projectID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *HttpEndpoints) updateProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	var req discoveryclient.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	project, err := h.discoveryClient.UpdateProject(c.Request.Context(), projectID, req)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *HttpEndpoints) getInstances(c *gin.Context) {
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	instances, err := h.discoveryClient.GetInstances(c.Request.Context(), projectID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

func (h *HttpEndpoints) createInstance(c *gin.Context) {
	projectID, ok := pathID(c, "projectID")
	if !ok {
		return
	}
	var req discoveryclient.CreateInstanceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	instance, err := h.discoveryClient.CreateInstance(c.Request.Context(), projectID, req)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

func (h *HttpEndpoints) getInstance(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	instance, err := h.discoveryClient.GetInstance(c.Request.Context(), instanceID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

func (h *HttpEndpoints) updateInstance(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	var req discoveryclient.InstanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	instance, err := h.discoveryClient.UpdateInstance(c.Request.Context(), instanceID, req)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

func (h *HttpEndpoints) activateInstance(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	if err := h.discoveryClient.ActivateInstance(c.Request.Context(), instanceID); err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "instance activated"})
}

func (h *HttpEndpoints) getInterviewConfig(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	conf, err := h.discoveryClient.GetInterviewConfig(c.Request.Context(), instanceID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *HttpEndpoints) getParticipants(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	participants, err := h.discoveryClient.GetParticipants(c.Request.Context(), instanceID)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func (h *HttpEndpoints) addParticipant(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	var req discoveryclient.AddParticipantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}
	participant, err := h.discoveryClient.AddParticipant(c.Request.Context(), instanceID, req)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

func (h *HttpEndpoints) createPreviewSession(c *gin.Context) {
	instanceID, ok := pathID(c, "instanceID")
	if !ok {
		return
	}
	previewNumber, err := strconv.Atoi(c.DefaultQuery("previewNumber", "1"))
	if err != nil || previewNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid previewNumber"})
		return
	}
	token, err := h.discoveryClient.CreatePreviewSession(c.Request.Context(), instanceID, previewNumber)
	if err != nil {
		writeDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
