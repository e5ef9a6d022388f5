package database

import (
	"context"
)

type Querier interface {
	GetCommit(ctx context.Context, sha string) (Commit, error)
	GetPullRequest(ctx context.Context, arg GetPullRequestParams) (PullRequest, error)
	GetTopNCommitAuthors(ctx context.Context, arg GetTopNCommitAuthorsParams) ([]GetTopNCommitAuthorsRow, error)
	InsertCommit(ctx context.Context, arg InsertCommitParams) (int64, error)
	InsertPullRequest(ctx context.Context, arg InsertPullRequestParams) (int64, error)
	ListCommitsByRepo(ctx context.Context, repoName string) ([]Commit, error)
	ListPullRequestsByRepo(ctx context.Context, repoName string) ([]PullRequest, error)
}

var _ Querier = (*Queries)(nil)
