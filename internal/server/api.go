// Package server wires the HTTP API: gin routes over the flat-file store,
// the global search engine, and the kanban persistence endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/config"
	"missionctl/internal/store"
)

var (
	cfg    config.Config
	engine *gin.Engine
	data   *store.Store
)

func initStore() {
	var err error
	data, err = store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("could not open the data directory: %v", err)
	}
}

func setCors() {
	corsconfig := cors.DefaultConfig()
	corsconfig.AllowOrigins = cfg.AllowedOrigins
	corsconfig.AllowMethods = cfg.AllowedMethods
	corsconfig.AllowHeaders = cfg.AllowedHeaders
	engine.Use(cors.New(corsconfig))
}

func setRoutes() {
	root := engine.Group("/")
	{
		root.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "alive"})
		})
	}

	api := engine.Group("/api")
	{
		api.GET("/projects", handleProjectList)
		api.POST("/projects", handleProjectCreate)
		api.GET("/projects/:project", handleProjectGet)
		api.PUT("/projects/:project", handleProjectUpdate)
		api.DELETE("/projects/:project", handleProjectDelete)

		api.GET("/projects/:project/tasks", handleTaskList)
		api.POST("/projects/:project/tasks", handleTaskCreate)
		api.PATCH("/projects/:project/tasks", handleTaskReorder)
		api.GET("/projects/:project/tasks/:task", handleTaskGet)
		api.PUT("/projects/:project/tasks/:task", handleTaskUpdate)
		api.DELETE("/projects/:project/tasks/:task", handleTaskDelete)

		api.POST("/projects/:project/tasks/:task/comments", handleCommentCreate)
		api.DELETE("/projects/:project/tasks/:task/comments/:comment", handleCommentDelete)

		api.POST("/projects/:project/tasks/:task/attachments", handleAttachmentUpload)
		api.POST("/projects/:project/tasks/:task/attachments/docs", handleAttachmentLinkDocs)
		api.GET("/projects/:project/tasks/:task/attachments/:attachment", handleAttachmentGet)
		api.DELETE("/projects/:project/tasks/:task/attachments/:attachment", handleAttachmentDelete)

		api.GET("/documents", handleDocumentList)
		api.POST("/documents", handleDocumentCreate)
		api.GET("/documents/:doc", handleDocumentGet)
		api.PUT("/documents/:doc", handleDocumentUpdate)
		api.DELETE("/documents/:doc", handleDocumentDelete)

		api.GET("/folders", handleFolderList)
		api.POST("/folders", handleFolderCreate)
		api.GET("/folders/:folder", handleFolderGet)
		api.PUT("/folders/:folder", handleFolderUpdate)
		api.DELETE("/folders/:folder", handleFolderDelete)

		api.GET("/members", handleMemberList)
		api.POST("/members", handleMemberCreate)
		api.GET("/members/:member", handleMemberGet)
		api.PUT("/members/:member", handleMemberUpdate)
		api.DELETE("/members/:member", handleMemberDelete)
		api.GET("/members/:member/activity", handleMemberActivity)

		api.GET("/scheduled", handleScheduledList)
		api.POST("/scheduled", handleScheduledCreate)
		api.PUT("/scheduled/:task", handleScheduledUpdate)
		api.DELETE("/scheduled/:task", handleScheduledDelete)

		api.GET("/memory", handleMemoryGet)
		api.GET("/memory/search", handleMemorySearch)
		api.GET("/memory/favorites", handleFavoritesList)
		api.POST("/memory/favorites", handleFavoriteToggle)

		api.GET("/search", handleGlobalSearch)
	}
}

func InitAndServe(confPath string) {
	cfg = config.Load(confPath)

	engine = gin.Default()
	setGinMode(cfg.ApiGinMode)

	setCors()
	setRoutes()

	initStore()

	// serve http
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()

	stop()
	log.Println("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

func setGinMode(mode string) {
	switch strings.ToLower(mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "envgin":
		gin.SetMode(gin.EnvGinMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}

// respondStoreError maps the store's error taxonomy onto the API contract:
// 404 for unresolved ids/slugs, 400 for input the store rejects, 500 for
// anything touching the filesystem.
func respondStoreError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("storage failure on %s: %v", entity, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
	}
}
