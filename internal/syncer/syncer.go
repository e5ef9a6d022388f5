// internal/syncer/syncer.go
package syncer

import (
	"context"
	"log/slog"

	custom_errors "repo-history-harvester/internal/errors"
	"repo-history-harvester/internal/model"
)

// Stages reported in a SyncError.
const (
	StageSchema           = "ensure schema"
	StageHarvestCommits   = "harvest commits"
	StageSaveCommits      = "save commits"
	StageHarvestPulls     = "harvest pull requests"
	StageSavePullRequests = "save pull requests"
)

// Harvester fetches the history of one repository from the remote API.
type Harvester interface {
	HarvestCommits(ctx context.Context, repoName string) ([]model.Commit, error)
	HarvestPullRequests(ctx context.Context, repoName string) ([]model.PullRequest, error)
}

// Store persists harvested records with insert-or-ignore semantics.
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveCommits(ctx context.Context, commits []model.Commit) (int64, error)
	SavePullRequests(ctx context.Context, pulls []model.PullRequest) (int64, error)
}

// Syncer orchestrates the fetching and storing of data, one repository at a time.
type Syncer struct {
	store     Store
	harvester Harvester
	logger    *slog.Logger
	repoNames []string
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(store Store, harvester Harvester, logger *slog.Logger, repoNames []string) *Syncer {
	return &Syncer{
		store:     store,
		harvester: harvester,
		logger:    logger,
		repoNames: repoNames,
	}
}

// Run ensures the schema and then syncs every configured repository in order.
// The first failure ends the run; repositories after it are not touched.
func (s *Syncer) Run(ctx context.Context) error {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return &custom_errors.SyncError{Stage: StageSchema, Err: err}
	}
	s.logger.Info("Database schema ready")

	for _, repoName := range s.repoNames {
		if err := s.syncRepo(ctx, repoName); err != nil {
			return err
		}
	}

	s.logger.Info("Data extraction and storage completed", "repositories", len(s.repoNames))
	return nil
}

// syncRepo runs harvest-then-persist for commits and then for pull requests.
func (s *Syncer) syncRepo(ctx context.Context, repoName string) error {
	logger := s.logger.With("repo", repoName)
	logger.Info("Processing repository")

	commits, err := s.harvester.HarvestCommits(ctx, repoName)
	if err != nil {
		return &custom_errors.SyncError{Repo: repoName, Stage: StageHarvestCommits, Err: err}
	}
	logger.Info("Found commits", "count", len(commits))

	inserted, err := s.store.SaveCommits(ctx, commits)
	if err != nil {
		return &custom_errors.SyncError{Repo: repoName, Stage: StageSaveCommits, Err: err}
	}
	logger.Info("Stored commits", "inserted", inserted)

	pulls, err := s.harvester.HarvestPullRequests(ctx, repoName)
	if err != nil {
		return &custom_errors.SyncError{Repo: repoName, Stage: StageHarvestPulls, Err: err}
	}
	logger.Info("Found pull requests", "count", len(pulls))

	inserted, err = s.store.SavePullRequests(ctx, pulls)
	if err != nil {
		return &custom_errors.SyncError{Repo: repoName, Stage: StageSavePullRequests, Err: err}
	}
	logger.Info("Stored pull requests", "inserted", inserted)

	return nil
}
