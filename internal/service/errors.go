package service

import "errors"

var (
	ErrStateInvalid    = errors.New("oauth state invalid, expired or already used")
	ErrStateMismatch   = errors.New("oauth state issued for another provider or purpose")
	ErrInvalidState    = errors.New("oauth state requires provider and purpose")
	ErrAccountNotFound = errors.New("social account not found")
	ErrInvalidAccount  = errors.New("social account requires id, platform and access token")
	ErrBrandNotFound   = errors.New("brand not found")
	ErrInvalidBrand    = errors.New("brand requires id and organization")
	ErrInvalidContent  = errors.New("content requires platform and external id")
	ErrNoFetcher       = errors.New("no fetcher registered for platform")
)
