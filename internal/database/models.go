package database

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Commit struct {
	Sha      string      `json:"sha"`
	Message  string      `json:"message"`
	Author   string      `json:"author"`
	Email    pgtype.Text `json:"email"`
	Date     time.Time   `json:"date"`
	Url      string      `json:"url"`
	RepoName string      `json:"repo_name"`
}

type PullRequest struct {
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
