package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/service"
	"steward/socialhub/pkg/response"
)

type BrandHandler struct {
	brandService service.BrandService
}

func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

type SaveBrandRequest struct {
	OrganizationID string `json:"organization_id" binding:"required"`
	Name           string `json:"name"`
}

func (h *BrandHandler) Save(c *gin.Context) {
	var req SaveBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	brand := &model.Brand{ID: c.Param("id"), OrganizationID: req.OrganizationID, Name: req.Name}
	if err := h.brandService.Save(c.Request.Context(), brand); err != nil {
		if errors.Is(err, service.ErrInvalidBrand) {
			response.BadRequest(c, err.Error())
			return
		}
		respondUnexpected(c, err, "save brand failed")
		return
	}
	response.Success(c, brand)
}

func (h *BrandHandler) Get(c *gin.Context) {
	brand, err := h.brandService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		respondUnexpected(c, err, "get brand failed")
		return
	}
	response.Success(c, brand)
}
