package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&CorrelationState{},
		&Brand{},
		&SocialAccount{},
		&IngestedContent{},
	); err != nil {
		return err
	}

	// Lookup index only; duplicates per external account are tolerated.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_social_accounts_platform_external " +
			"ON social_accounts (platform, external_account_id)",
	).Error; err != nil {
		return err
	}

	// Serves the eligibility scan of an ingestion run.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_social_accounts_eligible " +
			"ON social_accounts (platform, token_expires_at) WHERE access_token <> ''",
	).Error; err != nil {
		return err
	}

	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_ingested_content_fetched_at " +
			"ON ingested_content (fetched_at DESC)",
	).Error
}
