package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/socialhub/internal/model"
)

func TestPGContentRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGContentRepository(db)

	mock.ExpectExec(`INSERT INTO "ingested_content" .* ON CONFLICT \("platform","external_id"\) DO UPDATE SET .*` +
		regexp.QuoteMeta(`COALESCE(excluded.organization_id, ingested_content.organization_id)`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &model.IngestedContent{
		Platform:       "instagram",
		ExternalID:     "p1",
		OrganizationID: strPtr("org-A"),
		Payload:        model.Payload{"likes": 9},
		FetchedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGContentRepository_UpsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGContentRepository(db)

	mock.ExpectExec(`INSERT INTO "ingested_content"`).WillReturnError(errors.New("deadlock detected"))

	err := repo.Upsert(context.Background(), &model.IngestedContent{Platform: "instagram", ExternalID: "p1"})
	require.ErrorIs(t, err, ErrPersistence)
}

func TestPGContentRepository_ListWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGContentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "ingested_content" WHERE organization_id = \$1 AND platform = \$2 ORDER BY fetched_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"platform", "external_id", "organization_id", "payload", "fetched_at"}).
			AddRow("instagram", "p2", "org-A", []byte(`{"likes":3}`), now).
			AddRow("instagram", "p1", "org-A", []byte(`{"likes":9}`), now.Add(-time.Minute)))

	items, err := repo.List(context.Background(), ContentFilter{OrganizationID: "org-A", Platform: "instagram", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ExternalID)
	assert.Equal(t, float64(9), items[1].Payload["likes"])
	require.NotNil(t, items[1].OrganizationID)
	assert.Equal(t, "org-A", *items[1].OrganizationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGContentRepository_ListUnfiltered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGContentRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "ingested_content" ORDER BY fetched_at DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{"platform", "external_id"}))

	items, err := repo.List(context.Background(), ContentFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}
