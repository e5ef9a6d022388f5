// source: pull_requests.sql

package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const getPullRequest = `-- name: GetPullRequest :one
SELECT number, title, author, email, created_at, state, comments, review_comments, commits, url, repo_name
FROM pull_requests
WHERE repo_name = $1 AND number = $2
`

type GetPullRequestParams struct {
	RepoName string `json:"repo_name"`
	Number   int32  `json:"number"`
}

func (q *Queries) GetPullRequest(ctx context.Context, arg GetPullRequestParams) (PullRequest, error) {
	row := q.db.QueryRow(ctx, getPullRequest, arg.RepoName, arg.Number)
	var i PullRequest
	err := row.Scan(
		&i.Number,
		&i.Title,
		&i.Author,
		&i.Email,
		&i.CreatedAt,
		&i.State,
		&i.Comments,
		&i.ReviewComments,
		&i.Commits,
		&i.Url,
		&i.RepoName,
	)
	return i, err
}

const insertPullRequest = `-- name: InsertPullRequest :execrows
INSERT INTO pull_requests (number, title, author, email, created_at, state, comments, review_comments, commits, url, repo_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (number, repo_name) DO NOTHING
`

type InsertPullRequestParams struct {
	Number         int32           `json:"number"`
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Email          pgtype.Text     `json:"email"`
	CreatedAt      time.Time       `json:"created_at"`
	State          string          `json:"state"`
	Comments       int32           `json:"comments"`
	ReviewComments int32           `json:"review_comments"`
	Commits        json.RawMessage `json:"commits"`
	Url            string          `json:"url"`
	RepoName       string          `json:"repo_name"`
}

// InsertPullRequest returns 0 when the (number, repo_name) pair already exists.
func (q *Queries) InsertPullRequest(ctx context.Context, arg InsertPullRequestParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertPullRequest,
		arg.Number,
		arg.Title,
		arg.Author,
		arg.Email,
		arg.CreatedAt,
		arg.State,
		arg.Comments,
		arg.ReviewComments,
		arg.Commits,
		arg.Url,
		arg.RepoName,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPullRequestsByRepo = `-- name: ListPullRequestsByRepo :many
SELECT number, title, author, email, created_at, state, comments, review_comments, commits, url, repo_name
FROM pull_requests
WHERE repo_name = $1
ORDER BY created_at DESC
`

func (q *Queries) ListPullRequestsByRepo(ctx context.Context, repoName string) ([]PullRequest, error) {
	rows, err := q.db.Query(ctx, listPullRequestsByRepo, repoName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PullRequest
	for rows.Next() {
		var i PullRequest
		if err := rows.Scan(
			&i.Number,
			&i.Title,
			&i.Author,
			&i.Email,
			&i.CreatedAt,
			&i.State,
			&i.Comments,
			&i.ReviewComments,
			&i.Commits,
			&i.Url,
			&i.RepoName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
