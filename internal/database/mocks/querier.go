// Package mocks holds testify mocks for the database layer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"repo-history-harvester/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

var _ database.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) GetCommit(ctx context.Context, sha string) (database.Commit, error) {
	args := m.Called(ctx, sha)
	return args.Get(0).(database.Commit), args.Error(1)
}

func (m *MockQuerier) GetPullRequest(ctx context.Context, arg database.GetPullRequestParams) (database.PullRequest, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.PullRequest), args.Error(1)
}

func (m *MockQuerier) GetTopNCommitAuthors(ctx context.Context, arg database.GetTopNCommitAuthorsParams) ([]database.GetTopNCommitAuthorsRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.GetTopNCommitAuthorsRow), args.Error(1)
}

func (m *MockQuerier) InsertCommit(ctx context.Context, arg database.InsertCommitParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) InsertPullRequest(ctx context.Context, arg database.InsertPullRequestParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) ListCommitsByRepo(ctx context.Context, repoName string) ([]database.Commit, error) {
	args := m.Called(ctx, repoName)
	return args.Get(0).([]database.Commit), args.Error(1)
}

func (m *MockQuerier) ListPullRequestsByRepo(ctx context.Context, repoName string) ([]database.PullRequest, error) {
	args := m.Called(ctx, repoName)
	return args.Get(0).([]database.PullRequest), args.Error(1)
}
