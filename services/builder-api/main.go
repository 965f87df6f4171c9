package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/case-framework/discovery-builder/pkg/apihelpers"
	"github.com/case-framework/discovery-builder/services/builder-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Api-Key", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		draftStore,
		autosaveDelay,
		trashBin,
		discoveryClient,
		apiKeyMap(conf.APIClients),
	)
	v1APIHandlers.AddBuilderSessionsAPI(v1Root)
	v1APIHandlers.AddTrashAPI(v1Root)
	v1APIHandlers.AddDiscoveryAPI(v1Root)
	v1APIHandlers.AddInterviewAPI(v1Root)

	if conf.GinConfig.DebugMode {
		if err := apihelpers.WriteRoutesToFile(router, "builder-api-routes.txt"); err != nil {
			slog.Warn("Error writing routes to file", slog.String("error", err.Error()))
		}
	}

	server := &http.Server{
		Addr:    ":" + conf.GinConfig.Port,
		Handler: router,
	}
	if conf.GinConfig.MTLS.Use {
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}
		server.TLSConfig = tlsConfig
	}

	go func() {
		// Start the server
		slog.Info("Starting Builder API", slog.String("port", conf.GinConfig.Port))
		var err error
		if conf.GinConfig.MTLS.Use {
			err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Exited Builder API", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down Builder API")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Error during server shutdown", slog.String("error", err.Error()))
	}

	// pending drafts go out before the stores are closed
	v1APIHandlers.Shutdown()
	if draftDBService != nil {
		draftDBService.Close()
	}
	if err := localStore.Close(); err != nil {
		slog.Error("Error closing local store", slog.String("error", err.Error()))
	}
}
