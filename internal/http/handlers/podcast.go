package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/notecastlabs/notecast-backend/internal/core/podcast"
	"github.com/notecastlabs/notecast-backend/internal/core/scriptgen"
	"github.com/notecastlabs/notecast-backend/internal/repo/sqlite"
	"github.com/notecastlabs/notecast-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

// PodcastHandler exposes the podcast pipeline: script generation, audio
// synthesis, and configuration status.
type PodcastHandler struct {
	Repo        *sqlite.ConfigRepo
	Gen         *scriptgen.Generator
	Endpoint    string
	WaitTimeout time.Duration
}

func NewPodcastHandler(repo *sqlite.ConfigRepo, gen *scriptgen.Generator, endpoint string, waitTimeout time.Duration) *PodcastHandler {
	return &PodcastHandler{Repo: repo, Gen: gen, Endpoint: endpoint, WaitTimeout: waitTimeout}
}

// settings loads and resolves the podcast credentials and voice pair from the
// configuration store.
func (h *PodcastHandler) settings(c *gin.Context) (podcast.Settings, error) {
	raw, err := h.Repo.ByCategories(c.Request.Context(), "podcast", "doubao", "custom")
	if err != nil {
		return podcast.Settings{}, err
	}
	return podcast.ResolveSettings(podcast.NormalizeConfigKeys(raw))
}

// GenerateAudio synthesizes a script passed as a query parameter.
func (h *PodcastHandler) GenerateAudio(c *gin.Context) {
	script := c.Query("podcast_script")
	if script == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing podcast_script"})
		return
	}
	h.synthesize(c, script)
}

// ConvertScript synthesizes a script passed in the request body.
func (h *PodcastHandler) ConvertScript(c *gin.Context) {
	var req types.ConvertScriptReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Script == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing script"})
		return
	}
	h.synthesize(c, req.Script)
}

func (h *PodcastHandler) synthesize(c *gin.Context, script string) {
	settings, err := h.settings(c)
	if err != nil {
		writePodcastError(c, err)
		return
	}

	client := podcast.NewClient(h.Endpoint, h.WaitTimeout, settings)
	audio, err := client.GenerateAudio(c.Request.Context(), script)
	if err != nil {
		writePodcastError(c, err)
		return
	}
	c.Data(http.StatusOK, "audio/mp3", audio)
}

// GenerateScript produces a two-host dialogue from source text.
func (h *PodcastHandler) GenerateScript(c *gin.Context) {
	if h.Gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "script generation not configured"})
		return
	}
	var req types.GenerateScriptReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	script, err := h.Gen.PodcastScript(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "script_generation_failed"})
		return
	}
	c.JSON(http.StatusOK, types.GenerateScriptResp{Script: script})
}

// ConfigStatus reports whether synthesis is usable and which voices resolve.
func (h *PodcastHandler) ConfigStatus(c *gin.Context) {
	raw, err := h.Repo.ByCategories(c.Request.Context(), "podcast", "doubao", "custom")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "config_unavailable"})
		return
	}
	values := podcast.NormalizeConfigKeys(raw)
	settings, err := podcast.ResolveSettings(values)
	hasAppID := settings.AppID != ""
	hasKey := settings.AccessKey != ""
	if err != nil {
		// Resolution clears the struct on failure; recheck the raw values so
		// the UI can say which half is missing.
		hasAppID = values["app_id"] != "" || values["appId"] != ""
		hasKey = values["access_token"] != "" || values["access_key"] != "" || values["accessToken"] != ""
		settings.Speakers = podcast.ResolveSpeakers(values)
	}
	c.JSON(http.StatusOK, types.PodcastConfigStatusResp{
		Configured:   err == nil,
		HasAppID:     hasAppID,
		HasAccessKey: hasKey,
		Speakers:     settings.Speakers[:],
	})
}

func writePodcastError(c *gin.Context, err error) {
	var cfgErr *podcast.ConfigError
	var valErr *podcast.ValidationError
	var protoErr *podcast.ProtocolError
	var transErr *podcast.TransportError

	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &protoErr), errors.As(err, &transErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
