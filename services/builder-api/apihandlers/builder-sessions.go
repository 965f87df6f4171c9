package apihandlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/case-framework/discovery-builder/pkg/apihelpers/middlewares"
	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/case-framework/discovery-builder/pkg/survey/embeddeddata"
	"github.com/case-framework/discovery-builder/pkg/survey/logic"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddBuilderSessionsAPI(rg *gin.RouterGroup) {
	sessionsGroup := rg.Group("/builder/sessions")
	sessionsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		sessionsGroup.GET("/", h.listSessions)
		sessionsGroup.POST("/", mw.RequirePayload(), h.createSession)
	}

	sessionGroup := sessionsGroup.Group("/:sessionID")
	{
		sessionGroup.GET("/", h.getSession)
		sessionGroup.DELETE("/", h.closeSession)
		sessionGroup.POST("/actions", mw.RequirePayload(), h.dispatchAction)
		sessionGroup.POST("/undo", h.undo)
		sessionGroup.POST("/redo", h.redo)
		sessionGroup.POST("/save", h.saveSession)
		sessionGroup.GET("/warnings", h.getLogicWarnings)
		sessionGroup.POST("/evaluate", mw.RequirePayload(), h.evaluateLogic)

		sessionGroup.DELETE("/blocks/:blockID", h.trashBlock)
		sessionGroup.DELETE("/blocks/:blockID/questions/:questionID", h.trashQuestion)
		sessionGroup.POST("/trash/:itemID/restore", h.restoreFromTrash)
	}
}

type sessionResponse struct {
	SessionID  string             `json:"sessionId"`
	Survey     *types.Survey      `json:"survey"`
	CanUndo    bool               `json:"canUndo"`
	CanRedo    bool               `json:"canRedo"`
	SaveStatus builder.SaveStatus `json:"saveStatus"`
	LastSaved  *time.Time         `json:"lastSaved,omitempty"`
	// AffectedConditions lists the logic conditions reading a deleted embedded field. They now
	// evaluate as false.
	AffectedConditions []embeddeddata.FieldReference `json:"affectedConditions,omitempty"`
}

func newSessionResponse(s *builderSession) sessionResponse {
	state := s.builder.State()
	resp := sessionResponse{
		SessionID:  s.id,
		Survey:     state.Present,
		CanUndo:    state.CanUndo(),
		CanRedo:    state.CanRedo(),
		SaveStatus: s.builder.SaveStatus(),
	}
	if t, ok := s.builder.LastSaved(); ok {
		resp.LastSaved = &t
	}
	return resp
}

// sessionFromParams resolves the session of the request or writes the error response.
func (h *HttpEndpoints) sessionFromParams(c *gin.Context) (*builderSession, bool) {
	sessionID := c.Param("sessionID")
	if !utils.IsURLSafe(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	s, err := h.sessions.get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}

func (h *HttpEndpoints) listSessions(c *gin.Context) {
	sessions := h.sessions.list()
	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, newSessionResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": resp})
}

type createSessionReq struct {
	Survey *types.Survey `json:"survey"`
	// SurveyID restores the autosaved draft of the survey when no survey is sent.
	SurveyID string `json:"surveyId"`
}

func (h *HttpEndpoints) createSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to parse request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}

	survey := req.Survey
	if survey == nil {
		if req.SurveyID == "" || !utils.IsURLSafe(req.SurveyID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "survey or valid surveyId required"})
			return
		}
		if h.draftStore == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "drafts are not stored"})
			return
		}
		draft, err := h.draftStore.LoadDraft(req.SurveyID)
		if err != nil {
			if errors.Is(err, types.ErrDraftNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			slog.Error("failed to load draft", slog.String("surveyID", req.SurveyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load draft"})
			return
		}
		survey = draft.Survey
		if survey == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": types.ErrDraftNotFound.Error()})
			return
		}
	}

	var b *builder.Builder
	if h.draftStore != nil {
		b = builder.NewBuilder(h.draftStore, h.scheduler, h.autosaveDelay)
	} else {
		b = builder.NewBuilder(nil, nil, 0)
	}
	b.Dispatch(builder.SetSurvey{Survey: survey})

	s := h.sessions.add(b)
	slog.Info("builder session created", slog.String("sessionID", s.id), slog.String("surveyID", survey.ID))
	c.JSON(http.StatusCreated, newSessionResponse(s))
}

func (h *HttpEndpoints) getSession(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *HttpEndpoints) closeSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	s, err := h.sessions.remove(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	defer s.builder.Close()

	if err := s.builder.Flush(); err != nil {
		slog.Error("failed to save draft when closing session", slog.String("sessionID", s.id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft"})
		return
	}
	slog.Info("builder session closed", slog.String("sessionID", s.id))
	c.JSON(http.StatusOK, gin.H{"message": "session closed"})
}

func (h *HttpEndpoints) dispatchAction(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request"})
		return
	}
	action, err := builder.DecodeAction(data)
	if err != nil {
		slog.Debug("invalid builder action", slog.String("sessionID", s.id), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var affected []embeddeddata.FieldReference
	_, _, err = s.builder.DispatchIf(action, func(present *types.Survey) error {
		if err := builder.CheckEmbeddedFieldAction(present, action); err != nil {
			return err
		}
		if del, ok := action.(builder.DeleteEmbeddedField); ok {
			affected = embeddeddata.ConditionsReferencingField(present, del.Name)
		}
		return nil
	})
	if err != nil {
		slog.Debug("builder action rejected", slog.String("sessionID", s.id), slog.String("error", err.Error()))
		c.JSON(actionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := newSessionResponse(s)
	resp.AffectedConditions = affected
	c.JSON(http.StatusOK, resp)
}

// actionErrorStatus maps guard errors: edits of system fields conflict with the schema, anything
// else is a bad request.
func actionErrorStatus(err error) int {
	switch {
	case errors.Is(err, embeddeddata.ErrSystemField),
		errors.Is(err, embeddeddata.ErrSystemFieldReadOnly),
		errors.Is(err, embeddeddata.ErrSystemFlagChanged):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (h *HttpEndpoints) undo(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	s.builder.Dispatch(builder.Undo{})
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *HttpEndpoints) redo(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	s.builder.Dispatch(builder.Redo{})
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *HttpEndpoints) saveSession(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	if err := s.builder.Flush(); err != nil {
		slog.Error("failed to save draft", slog.String("sessionID", s.id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft"})
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

type logicReport struct {
	Warnings      map[string][]logic.LogicWarning `json:"warnings"`
	CircularLogic logic.CircularLogicResult       `json:"circularLogic"`
	Cycles        []logic.LogicCycle              `json:"cycles"`
	Summaries     map[string]logic.LogicSummary   `json:"summaries"`
}

func (h *HttpEndpoints) getLogicWarnings(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	survey := s.builder.Present()
	questions := survey.AllQuestions()
	c.JSON(http.StatusOK, logicReport{
		Warnings:      logic.GetSurveyLogicWarnings(survey),
		CircularLogic: logic.DetectCircularLogic(questions),
		Cycles:        logic.DetectLogicCycles(questions),
		Summaries:     logic.GetSurveyLogicSummaries(survey),
	})
}

type evaluateReq struct {
	Responses    logic.ResponseData `json:"responses"`
	EmbeddedData logic.EmbeddedData `json:"embeddedData"`
}

type evaluateResponse struct {
	VisibleQuestionIDs []string                    `json:"visibleQuestionIds"`
	Skip               map[string]logic.SkipResult `json:"skip"`
}

// evaluateLogic runs display and skip logic of the current document against a respondent snapshot.
func (h *HttpEndpoints) evaluateLogic(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	var req evaluateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse request"})
		return
	}

	questions := s.builder.Present().AllQuestions()
	resp := evaluateResponse{
		VisibleQuestionIDs: []string{},
		Skip:               map[string]logic.SkipResult{},
	}
	for _, q := range logic.GetVisibleQuestions(questions, req.Responses, req.EmbeddedData) {
		resp.VisibleQuestionIDs = append(resp.VisibleQuestionIDs, q.ID)
		if q.SkipLogic != nil {
			resp.Skip[q.ID] = logic.EvaluateSkipLogic(q.SkipLogic, req.Responses, req.EmbeddedData)
		}
	}
	c.JSON(http.StatusOK, resp)
}
