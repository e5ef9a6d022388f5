// internal/model/models.go
package model

import "time"

// Commit is a single commit harvested from a repository's history.
// SHA is unique across all repositories, so a commit shared by forks is stored once.
type Commit struct {
	SHA      string
	Message  string
	Author   string
	Email    *string
	Date     time.Time
	URL      string
	RepoName string
}

// PullRequest is a pull request harvested from a repository, together with
// the SHAs of the commits it contained at harvest time.
type PullRequest struct {
	Number         int
	Title          string
	Author         string
	Email          *string // nil when the submitter has no public email
	CreatedAt      time.Time
	State          string
	Comments       int
	ReviewComments int
	Commits        []string
	URL            string
	RepoName       string
}
