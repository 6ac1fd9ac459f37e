package http

import (
	"log"

	"github.com/notecastlabs/notecast-backend/internal/config"
	"github.com/notecastlabs/notecast-backend/internal/core/podcast"
	"github.com/notecastlabs/notecast-backend/internal/core/scriptgen"
	"github.com/notecastlabs/notecast-backend/internal/http/handlers"
	"github.com/notecastlabs/notecast-backend/internal/repo/sqlite"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.Config, repo *sqlite.ConfigRepo) *gin.Engine {
	r := gin.Default()

	var gen *scriptgen.Generator
	if cfg.GeminiAPIKey != "" {
		var err error
		gen, err = scriptgen.New(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("script generator disabled: %v", err)
		}
	}

	endpoint := cfg.PodcastWSURL
	if endpoint == "" {
		endpoint = podcast.DefaultEndpoint
	}

	ph := handlers.NewPodcastHandler(repo, gen, endpoint, cfg.PodcastWaitTimeout)
	ch := handlers.NewConfigsHandler(repo)

	api := r.Group("/v1")
	api.POST("/podcast/generate-audio", ph.GenerateAudio)
	api.POST("/podcast/convert-script", ph.ConvertScript)
	api.POST("/podcast/generate-script", ph.GenerateScript)
	api.GET("/podcast/config-status", ph.ConfigStatus)
	api.GET("/config", ch.List)
	api.PUT("/config/:key", ch.Upsert)
	return r
}
