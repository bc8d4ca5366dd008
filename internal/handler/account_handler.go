package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/service"
	"steward/socialhub/pkg/response"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// UpsertAccountRequest carries the full credential record. Tokens are
// accepted here but never returned.
type UpsertAccountRequest struct {
	OrganizationOverride string     `json:"organization_override"`
	OrganizationID       string     `json:"organization_id"`
	BrandID              string     `json:"brand_id"`
	Platform             string     `json:"platform" binding:"required"`
	ExternalAccountID    string     `json:"external_account_id"`
	AccessToken          string     `json:"access_token" binding:"required"`
	RefreshToken         *string    `json:"refresh_token"`
	TokenExpiresAt       *time.Time `json:"token_expires_at"`
	Status               string     `json:"status"`
	IsConnected          *bool      `json:"is_connected"`
	Username             string     `json:"username"`
	DisplayName          string     `json:"display_name"`
	AvatarURL            string     `json:"avatar_url"`
	LastSyncAt           *time.Time `json:"last_sync_at"`
	FollowerCount        *int64     `json:"follower_count"`
}

type UpsertAccountResponse struct {
	Stored  bool                 `json:"stored"`
	Account *model.SocialAccount `json:"account,omitempty"`
}

func (h *AccountHandler) Upsert(c *gin.Context) {
	var req UpsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !isValidAccountStatus(req.Status) {
		response.BadRequest(c, "unsupported account status")
		return
	}

	connected := true
	if req.IsConnected != nil {
		connected = *req.IsConnected
	}
	account := &model.SocialAccount{
		ID:                c.Param("id"),
		OrganizationID:    req.OrganizationID,
		BrandID:           req.BrandID,
		Platform:          req.Platform,
		ExternalAccountID: req.ExternalAccountID,
		AccessToken:       req.AccessToken,
		RefreshToken:      req.RefreshToken,
		TokenExpiresAt:    req.TokenExpiresAt,
		Status:            model.AccountStatus(req.Status),
		IsConnected:       connected,
		Username:          req.Username,
		DisplayName:       req.DisplayName,
		AvatarURL:         req.AvatarURL,
		LastSyncAt:        req.LastSyncAt,
		FollowerCount:     req.FollowerCount,
	}

	stored, err := h.accountService.Upsert(c.Request.Context(), account, req.OrganizationOverride)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAccount) {
			response.BadRequest(c, err.Error())
			return
		}
		respondUnexpected(c, err, "upsert account failed")
		return
	}
	if !stored {
		response.Accepted(c, "organization unresolved, account not stored", UpsertAccountResponse{Stored: false})
		return
	}

	response.Success(c, UpsertAccountResponse{Stored: true, Account: account})
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accountService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		respondUnexpected(c, err, "get account failed")
		return
	}
	response.Success(c, account)
}

func (h *AccountHandler) ListEligible(c *gin.Context) {
	accounts, err := h.accountService.ListEligible(c.Request.Context(), c.Param("platform"))
	if err != nil {
		respondUnexpected(c, err, "list eligible accounts failed")
		return
	}
	response.Success(c, accounts)
}

func isValidAccountStatus(s string) bool {
	switch model.AccountStatus(s) {
	case "", model.AccountStatusActive, model.AccountStatusExpired,
		model.AccountStatusRevoked, model.AccountStatusDisconnected:
		return true
	}
	return false
}
