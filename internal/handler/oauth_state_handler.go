package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"steward/socialhub/internal/service"
	"steward/socialhub/pkg/response"
)

type OAuthStateHandler struct {
	stateService service.OAuthStateService
}

func NewOAuthStateHandler(stateService service.OAuthStateService) *OAuthStateHandler {
	return &OAuthStateHandler{stateService: stateService}
}

type StartStateRequest struct {
	// SubjectID defaults to the caller's token subject.
	SubjectID string `json:"subject_id"`
	Purpose   string `json:"purpose" binding:"required"`
	Provider  string `json:"provider" binding:"required"`
}

type StartStateResponse struct {
	State     string    `json:"state"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *OAuthStateHandler) Start(c *gin.Context) {
	var req StartStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.SubjectID == "" {
		subject, err := getSubjectFromContext(c)
		if err != nil {
			response.Unauthorized(c, "invalid service context")
			return
		}
		req.SubjectID = subject
	}

	state, err := h.stateService.Start(c.Request.Context(), req.SubjectID, req.Purpose, req.Provider)
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			response.BadRequest(c, err.Error())
			return
		}
		respondUnexpected(c, err, "issue state failed")
		return
	}

	response.Created(c, StartStateResponse{State: state.Token, ExpiresAt: state.ExpiresAt})
}

type RedeemStateRequest struct {
	Provider string `json:"provider"`
	Purpose  string `json:"purpose"`
}

func (h *OAuthStateHandler) Redeem(c *gin.Context) {
	var req RedeemStateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}

	state, err := h.stateService.Complete(c.Request.Context(), c.Param("token"), req.Provider, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStateInvalid), errors.Is(err, service.ErrStateMismatch):
			response.BadRequest(c, err.Error())
		default:
			respondUnexpected(c, err, "redeem state failed")
		}
		return
	}

	response.Success(c, state)
}
