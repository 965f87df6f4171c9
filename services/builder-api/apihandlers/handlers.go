package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	discoveryclient "github.com/case-framework/discovery-builder/pkg/discovery-client"
	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/case-framework/discovery-builder/pkg/survey/trash"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

type HttpEndpoints struct {
	draftStore      builder.DraftStore
	scheduler       builder.Scheduler
	autosaveDelay   time.Duration
	trashBin        *trash.Bin
	discoveryClient *discoveryclient.Client
	apiKeys         map[string]string
	sessions        *sessionRegistry
}

// NewHTTPHandler wires the builder endpoints. draftStore and discoveryClient may be nil; without
// a draft store nothing is autosaved, without a client the project endpoints are not registered.
func NewHTTPHandler(
	draftStore builder.DraftStore,
	autosaveDelay time.Duration,
	trashBin *trash.Bin,
	discoveryClient *discoveryclient.Client,
	apiKeys map[string]string,
) *HttpEndpoints {
	return &HttpEndpoints{
		draftStore:      draftStore,
		scheduler:       builder.NewTimeScheduler(),
		autosaveDelay:   autosaveDelay,
		trashBin:        trashBin,
		discoveryClient: discoveryClient,
		apiKeys:         apiKeys,
		sessions:        newSessionRegistry(),
	}
}

// Shutdown writes pending drafts of all open sessions and closes them.
func (h *HttpEndpoints) Shutdown() {
	for _, s := range h.sessions.removeAll() {
		if err := s.builder.Flush(); err != nil {
			slog.Error("failed to save draft on shutdown", slog.String("sessionID", s.id), slog.String("error", err.Error()))
		}
		s.builder.Close()
	}
}
