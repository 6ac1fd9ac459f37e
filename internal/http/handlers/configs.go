package handlers

import (
	"net/http"

	"github.com/notecastlabs/notecast-backend/internal/repo/sqlite"
	"github.com/notecastlabs/notecast-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

type ConfigsHandler struct {
	Repo *sqlite.ConfigRepo
}

func NewConfigsHandler(repo *sqlite.ConfigRepo) *ConfigsHandler {
	return &ConfigsHandler{Repo: repo}
}

func (h *ConfigsHandler) List(c *gin.Context) {
	entries, err := h.Repo.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "config_unavailable"})
		return
	}
	if entries == nil {
		entries = []sqlite.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ConfigsHandler) Upsert(c *gin.Context) {
	key := c.Param("key")
	var req types.ConfigUpsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	e := sqlite.Entry{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := h.Repo.Set(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "config_write_failed"})
		return
	}
	c.JSON(http.StatusOK, e)
}
