package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repo-history-harvester/internal/database"
	"repo-history-harvester/internal/database/mocks"
	"repo-history-harvester/internal/model"
)

func strPtr(s string) *string { return &s }

func TestSaveCommits(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{SHA: "abc123", Message: "first", Author: "Ann", Email: strPtr("ann@example.com"), Date: date, URL: "u1", RepoName: "org/repo1"},
		{SHA: "def456", Message: "second", Author: "Bob", Date: date, URL: "u2", RepoName: "org/repo1"},
	}

	t.Run("inserts every commit and counts new rows", func(t *testing.T) {
		mockQ := new(mocks.MockQuerier)
		mockQ.On("InsertCommit", ctx, database.InsertCommitParams{
			Sha: "abc123", Message: "first", Author: "Ann", Date: date, Url: "u1", RepoName: "org/repo1",
			Email: toPgText(strPtr("ann@example.com")),
		}).Return(int64(1), nil).Once()
		// Already stored: the conflict is skipped and reported as zero rows.
		mockQ.On("InsertCommit", ctx, mock.MatchedBy(func(p database.InsertCommitParams) bool {
			return p.Sha == "def456" && !p.Email.Valid
		})).Return(int64(0), nil).Once()

		n, err := saveCommits(ctx, mockQ, commits)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		mockQ.AssertExpectations(t)
	})

	t.Run("stops at the first failing insert", func(t *testing.T) {
		mockQ := new(mocks.MockQuerier)
		dbError := errors.New("connection reset")
		mockQ.On("InsertCommit", ctx, mock.Anything).Return(int64(0), dbError).Once()

		_, err := saveCommits(ctx, mockQ, commits)

		assert.ErrorIs(t, err, dbError)
		assert.ErrorContains(t, err, "abc123")
		mockQ.AssertNumberOfCalls(t, "InsertCommit", 1)
	})
}

func TestSavePullRequests(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("encodes commit shas as a json array", func(t *testing.T) {
		mockQ := new(mocks.MockQuerier)
		var got database.InsertPullRequestParams
		mockQ.On("InsertPullRequest", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(database.InsertPullRequestParams)
		}).Return(int64(1), nil).Once()

		n, err := savePullRequests(ctx, mockQ, []model.PullRequest{{
			Number: 5, Title: "Add feature", Author: "ann", CreatedAt: created, State: "open",
			Comments: 3, ReviewComments: 1, Commits: []string{"c1", "c2"}, URL: "u", RepoName: "org/repo1",
		}})

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, int32(5), got.Number)
		assert.Equal(t, "org/repo1", got.RepoName)
		assert.False(t, got.Email.Valid)
		assert.Equal(t, int32(3), got.Comments)
		assert.Equal(t, int32(1), got.ReviewComments)
		var shas []string
		require.NoError(t, json.Unmarshal(got.Commits, &shas))
		assert.Equal(t, []string{"c1", "c2"}, shas)
		mockQ.AssertExpectations(t)
	})

	t.Run("writes an empty array for a pull request without commits", func(t *testing.T) {
		params, err := toInsertPullRequestParams(model.PullRequest{Number: 1, RepoName: "org/repo1"})

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(params.Commits))
	})

	t.Run("keeps the submitter email when present", func(t *testing.T) {
		params, err := toInsertPullRequestParams(model.PullRequest{Number: 1, Email: strPtr("ann@example.com")})

		require.NoError(t, err)
		assert.True(t, params.Email.Valid)
		assert.Equal(t, "ann@example.com", params.Email.String)
	})

	t.Run("returns the insert error", func(t *testing.T) {
		mockQ := new(mocks.MockQuerier)
		dbError := errors.New("permission denied")
		mockQ.On("InsertPullRequest", ctx, mock.Anything).Return(int64(0), dbError).Once()

		_, err := savePullRequests(ctx, mockQ, []model.PullRequest{{Number: 7, RepoName: "org/repo1"}})

		assert.ErrorIs(t, err, dbError)
		assert.ErrorContains(t, err, "org/repo1#7")
	})
}

func TestStore_EmptyBatchesSkipTheDatabase(t *testing.T) {
	// A nil pool would panic if a transaction were opened.
	s := &Store{}

	n, err := s.SaveCommits(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.SavePullRequests(context.Background(), []model.PullRequest{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
