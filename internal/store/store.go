// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"repo-history-harvester/internal/database"
	"repo-history-harvester/internal/model"
)

// Store persists harvested records. Writes never overwrite an existing row.
type Store struct {
	dbpool *pgxpool.Pool
	dbURL  string
	logger *slog.Logger
}

// New creates a Store on top of an open pool. dbURL is used for schema migrations.
func New(dbpool *pgxpool.Pool, dbURL string, logger *slog.Logger) *Store {
	return &Store{
		dbpool: dbpool,
		dbURL:  dbURL,
		logger: logger,
	}
}

// EnsureSchema creates the commits and pull_requests tables when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return database.Migrate(s.dbURL)
}

// SaveCommits inserts commits in a single transaction and reports how many rows were new.
func (s *Store) SaveCommits(ctx context.Context, commits []model.Commit) (int64, error) {
	if len(commits) == 0 {
		return 0, nil
	}
	n, err := s.inTransaction(ctx, func(q database.Querier) (int64, error) {
		return saveCommits(ctx, q, commits)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Commits written", "inserted", n, "skipped", int64(len(commits))-n)
	return n, nil
}

// SavePullRequests inserts pull requests in a single transaction and reports how many rows were new.
func (s *Store) SavePullRequests(ctx context.Context, pulls []model.PullRequest) (int64, error) {
	if len(pulls) == 0 {
		return 0, nil
	}
	n, err := s.inTransaction(ctx, func(q database.Querier) (int64, error) {
		return savePullRequests(ctx, q, pulls)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Pull requests written", "inserted", n, "skipped", int64(len(pulls))-n)
	return n, nil
}

// inTransaction runs fn against a transaction-scoped querier and commits if fn succeeds.
func (s *Store) inTransaction(ctx context.Context, fn func(q database.Querier) (int64, error)) (int64, error) {
	tx, err := s.dbpool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	n, err := fn(database.New(tx))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func saveCommits(ctx context.Context, q database.Querier, commits []model.Commit) (int64, error) {
	var inserted int64
	for _, c := range commits {
		n, err := q.InsertCommit(ctx, toInsertCommitParams(c))
		if err != nil {
			return 0, fmt.Errorf("insert commit %s: %w", c.SHA, err)
		}
		inserted += n
	}
	return inserted, nil
}

func savePullRequests(ctx context.Context, q database.Querier, pulls []model.PullRequest) (int64, error) {
	var inserted int64
	for _, pr := range pulls {
		params, err := toInsertPullRequestParams(pr)
		if err != nil {
			return 0, err
		}
		n, err := q.InsertPullRequest(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("insert pull request %s#%d: %w", pr.RepoName, pr.Number, err)
		}
		inserted += n
	}
	return inserted, nil
}

func toInsertCommitParams(c model.Commit) database.InsertCommitParams {
	return database.InsertCommitParams{
		Sha:      c.SHA,
		Message:  c.Message,
		Author:   c.Author,
		Email:    toPgText(c.Email),
		Date:     c.Date,
		Url:      c.URL,
		RepoName: c.RepoName,
	}
}

func toInsertPullRequestParams(pr model.PullRequest) (database.InsertPullRequestParams, error) {
	shas := pr.Commits
	if shas == nil {
		shas = []string{}
	}
	encoded, err := json.Marshal(shas)
	if err != nil {
		return database.InsertPullRequestParams{}, fmt.Errorf("encode commits of pull request %s#%d: %w", pr.RepoName, pr.Number, err)
	}

	return database.InsertPullRequestParams{
		Number:         int32(pr.Number),
		Title:          pr.Title,
		Author:         pr.Author,
		Email:          toPgText(pr.Email),
		CreatedAt:      pr.CreatedAt,
		State:          pr.State,
		Comments:       int32(pr.Comments),
		ReviewComments: int32(pr.ReviewComments),
		Commits:        encoded,
		Url:            pr.URL,
		RepoName:       pr.RepoName,
	}, nil
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
