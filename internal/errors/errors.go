// internal/errors/errors.go
package errors

import "fmt"

// ErrInvalidRepoFormat is returned when a configured repository is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// ErrMissingCommitAuthor is returned when the API hands back a commit without an author block.
type ErrMissingCommitAuthor struct {
	Repo string
	SHA  string
}

func (e *ErrMissingCommitAuthor) Error() string {
	return fmt.Sprintf("commit %s in %s has no author", e.SHA, e.Repo)
}

// SyncError reports the repository and step at which a batch run stopped.
type SyncError struct {
	Repo  string
	Stage string
	Err   error
}

func (e *SyncError) Error() string {
	if e.Repo == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Repo, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
