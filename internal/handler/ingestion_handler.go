package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"steward/socialhub/internal/service"
	"steward/socialhub/pkg/response"
)

type IngestionHandler struct {
	ingestionService service.IngestionService
}

func NewIngestionHandler(ingestionService service.IngestionService) *IngestionHandler {
	return &IngestionHandler{ingestionService: ingestionService}
}

func (h *IngestionHandler) Run(c *gin.Context) {
	summary, err := h.ingestionService.Run(c.Request.Context(), c.Param("platform"))
	if err != nil {
		if errors.Is(err, service.ErrNoFetcher) {
			response.NotFound(c, err.Error())
			return
		}
		respondUnexpected(c, err, "ingestion run failed")
		return
	}
	response.Success(c, summary)
}

func (h *IngestionHandler) ListContent(c *gin.Context) {
	opts := service.ListOptions{
		OrganizationID: c.Query("organization_id"),
		Platform:       c.Query("platform"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	items, err := h.ingestionService.ListIngested(c.Request.Context(), opts)
	if err != nil {
		respondUnexpected(c, err, "list content failed")
		return
	}
	response.Success(c, items)
}
