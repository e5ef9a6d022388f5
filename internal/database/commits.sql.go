// source: commits.sql

package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCommit = `-- name: GetCommit :one
SELECT sha, message, author, email, date, url, repo_name
FROM commits
WHERE sha = $1
`

func (q *Queries) GetCommit(ctx context.Context, sha string) (Commit, error) {
	row := q.db.QueryRow(ctx, getCommit, sha)
	var i Commit
	err := row.Scan(
		&i.Sha,
		&i.Message,
		&i.Author,
		&i.Email,
		&i.Date,
		&i.Url,
		&i.RepoName,
	)
	return i, err
}

const getTopNCommitAuthors = `-- name: GetTopNCommitAuthors :many
SELECT author, COUNT(*) AS commit_count
FROM commits
WHERE repo_name = $1
GROUP BY author
ORDER BY commit_count DESC, author
LIMIT $2
`

type GetTopNCommitAuthorsParams struct {
	RepoName string `json:"repo_name"`
	Limit    int32  `json:"limit"`
}

type GetTopNCommitAuthorsRow struct {
	Author      string `json:"author"`
	CommitCount int64  `json:"commit_count"`
}

func (q *Queries) GetTopNCommitAuthors(ctx context.Context, arg GetTopNCommitAuthorsParams) ([]GetTopNCommitAuthorsRow, error) {
	rows, err := q.db.Query(ctx, getTopNCommitAuthors, arg.RepoName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetTopNCommitAuthorsRow
	for rows.Next() {
		var i GetTopNCommitAuthorsRow
		if err := rows.Scan(&i.Author, &i.CommitCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertCommit = `-- name: InsertCommit :execrows
INSERT INTO commits (sha, message, author, email, date, url, repo_name)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (sha) DO NOTHING
`

type InsertCommitParams struct {
	Sha      string      `json:"sha"`
	Message  string      `json:"message"`
	Author   string      `json:"author"`
	Email    pgtype.Text `json:"email"`
	Date     time.Time   `json:"date"`
	Url      string      `json:"url"`
	RepoName string      `json:"repo_name"`
}

// InsertCommit returns 0 when a row with the same sha already exists.
func (q *Queries) InsertCommit(ctx context.Context, arg InsertCommitParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertCommit,
		arg.Sha,
		arg.Message,
		arg.Author,
		arg.Email,
		arg.Date,
		arg.Url,
		arg.RepoName,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listCommitsByRepo = `-- name: ListCommitsByRepo :many
SELECT sha, message, author, email, date, url, repo_name
FROM commits
WHERE repo_name = $1
ORDER BY date DESC
`

func (q *Queries) ListCommitsByRepo(ctx context.Context, repoName string) ([]Commit, error) {
	rows, err := q.db.Query(ctx, listCommitsByRepo, repoName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Commit
	for rows.Next() {
		var i Commit
		if err := rows.Scan(
			&i.Sha,
			&i.Message,
			&i.Author,
			&i.Email,
			&i.Date,
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
