package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"steward/socialhub/internal/config"
	"steward/socialhub/internal/ingest"
	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
)

const (
	defaultIngestConcurrency = 4
	defaultFetchTimeout      = 30 * time.Second
)

type FailureStage string

const (
	FailureStageFetch  FailureStage = "fetch"
	FailureStageUpsert FailureStage = "upsert"
)

type AccountFailure struct {
	AccountID string       `json:"account_id"`
	Stage     FailureStage `json:"stage"`
	Error     string       `json:"error"`
}

// RunSummary reports one ingestion pass over a platform. An account that
// returned no items counts as Skipped; items without an external id count
// as ItemsSkipped.
type RunSummary struct {
	RunID         string           `json:"run_id"`
	Platform      string           `json:"platform"`
	Eligible      int              `json:"eligible"`
	Succeeded     int              `json:"succeeded"`
	Skipped       int              `json:"skipped"`
	Failed        int              `json:"failed"`
	ItemsUpserted int              `json:"items_upserted"`
	ItemsSkipped  int              `json:"items_skipped"`
	Failures      []AccountFailure `json:"failures,omitempty"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
}

type ListOptions struct {
	OrganizationID string
	Platform       string
	Limit          int
}

type IngestionService interface {
	// Run fetches content for every eligible account on platform and merges
	// it into the content store. Account failures are recorded in the
	// summary; only a failed eligibility lookup or a missing fetcher fails
	// the run.
	Run(ctx context.Context, platform string) (*RunSummary, error)
	Upsert(ctx context.Context, platform, externalID string, organizationID *string, payload model.Payload) error
	ListIngested(ctx context.Context, opts ListOptions) ([]model.IngestedContent, error)
}

type ingestionService struct {
	accounts     repository.SocialAccountRepository
	content      repository.ContentRepository
	fetchers     *ingest.Registry
	logger       *zap.Logger
	concurrency  int
	fetchTimeout time.Duration
}

var _ IngestionService = (*ingestionService)(nil)

func NewIngestionService(
	cfg config.IngestionConfig,
	accounts repository.SocialAccountRepository,
	content repository.ContentRepository,
	fetchers *ingest.Registry,
	logger *zap.Logger,
) IngestionService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultIngestConcurrency
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &ingestionService{
		accounts:     accounts,
		content:      content,
		fetchers:     fetchers,
		logger:       logger,
		concurrency:  concurrency,
		fetchTimeout: fetchTimeout,
	}
}

// accountOutcome is what one account contributed to a run.
type accountOutcome struct {
	upserted int
	skipped  int
	empty    bool
	failure  *AccountFailure
}

func (s *ingestionService) Run(ctx context.Context, platform string) (*RunSummary, error) {
	fetcher, ok := s.fetchers.Lookup(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFetcher, platform)
	}

	summary := &RunSummary{
		RunID:     uuid.New().String(),
		Platform:  platform,
		StartedAt: time.Now().UTC(),
	}
	log := s.logger.With(zap.String("run_id", summary.RunID), zap.String("platform", platform))

	accounts, err := s.accounts.ListEligible(ctx, platform)
	if err != nil {
		log.Error("ingestion run aborted: eligible accounts unavailable", zap.Error(err))
		return nil, fmt.Errorf("list eligible accounts: %w", err)
	}
	summary.Eligible = len(accounts)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, account := range accounts {
		g.Go(func() error {
			outcome := s.ingestAccount(ctx, fetcher, platform, account)

			mu.Lock()
			defer mu.Unlock()
			summary.ItemsUpserted += outcome.upserted
			summary.ItemsSkipped += outcome.skipped
			switch {
			case outcome.failure != nil:
				summary.Failed++
				summary.Failures = append(summary.Failures, *outcome.failure)
				log.Warn("ingestion failed for account",
					zap.String("account_id", account.ID),
					zap.String("stage", string(outcome.failure.Stage)),
					zap.String("error", outcome.failure.Error),
				)
			case outcome.empty:
				summary.Skipped++
			default:
				summary.Succeeded++
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].AccountID < summary.Failures[j].AccountID
	})
	summary.FinishedAt = time.Now().UTC()

	log.Info("ingestion run finished",
		zap.Int("eligible", summary.Eligible),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("items_upserted", summary.ItemsUpserted),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (s *ingestionService) ingestAccount(ctx context.Context, fetcher ingest.Fetcher, platform string, account model.EligibleAccount) accountOutcome {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	items, err := fetcher.Fetch(fetchCtx, account)
	cancel()
	if err != nil {
		return accountOutcome{failure: &AccountFailure{AccountID: account.ID, Stage: FailureStageFetch, Error: err.Error()}}
	}
	if len(items) == 0 {
		return accountOutcome{empty: true}
	}

	var outcome accountOutcome
	for _, item := range items {
		if item.ExternalID == "" {
			outcome.skipped++
			continue
		}
		orgID := account.OrganizationID
		if err := s.Upsert(ctx, platform, item.ExternalID, &orgID, item.Payload); err != nil {
			outcome.failure = &AccountFailure{AccountID: account.ID, Stage: FailureStageUpsert, Error: err.Error()}
			return outcome
		}
		outcome.upserted++
	}
	return outcome
}

func (s *ingestionService) Upsert(ctx context.Context, platform, externalID string, organizationID *string, payload model.Payload) error {
	if platform == "" || externalID == "" {
		return ErrInvalidContent
	}
	item := &model.IngestedContent{
		Platform:       platform,
		ExternalID:     externalID,
		OrganizationID: organizationID,
		Payload:        payload,
		FetchedAt:      time.Now().UTC(),
	}
	if err := s.content.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert content: %w", err)
	}
	return nil
}

func (s *ingestionService) ListIngested(ctx context.Context, opts ListOptions) ([]model.IngestedContent, error) {
	limit := opts.Limit
	if limit < 0 {
		limit = 0
	}
	items, err := s.content.List(ctx, repository.ContentFilter{
		OrganizationID: opts.OrganizationID,
		Platform:       opts.Platform,
		Limit:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list ingested content: %w", err)
	}
	return items, nil
}
