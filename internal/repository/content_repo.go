package repository

import (
	"context"

	"steward/socialhub/internal/model"
)

// ContentFilter narrows a content listing. Zero values mean "no filter";
// Limit <= 0 means unlimited.
type ContentFilter struct {
	OrganizationID string
	Platform       string
	Limit          int
}

type ContentRepository interface {
	// Upsert merges the item at (Platform, ExternalID). Payload and FetchedAt
	// are overwritten; a nil OrganizationID keeps the stored attribution.
	Upsert(ctx context.Context, item *model.IngestedContent) error
	// List returns items ordered by FetchedAt, most recent first.
	List(ctx context.Context, filter ContentFilter) ([]model.IngestedContent, error)
}
