// internal/api/handler.go
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"

	"repo-history-harvester/internal/database"
)

// Handler is the container for API dependencies.
type Handler struct {
	db     database.Querier
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db database.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1/repos/{owner}/{name}", func(r chi.Router) {
		r.Get("/commits", h.getCommits)
		r.Get("/pulls", h.getPullRequests)
		r.Get("/pulls/{number}", h.getPullRequest)
		r.Get("/stats/top-committers", h.getTopCommitters)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getCommits returns the stored commits of a repository, newest first.
// GET /v1/repos/{owner}/{name}/commits
func (h *Handler) getCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.db.ListCommitsByRepo(r.Context(), repoName(r))
	if err != nil {
		h.logger.Error("Failed to get commits", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if commits == nil {
		commits = []database.Commit{}
	}

	respondWithJSON(w, http.StatusOK, commits)
}

// getPullRequests returns the stored pull requests of a repository, newest first.
// GET /v1/repos/{owner}/{name}/pulls
func (h *Handler) getPullRequests(w http.ResponseWriter, r *http.Request) {
	pulls, err := h.db.ListPullRequestsByRepo(r.Context(), repoName(r))
	if err != nil {
		h.logger.Error("Failed to get pull requests", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if pulls == nil {
		pulls = []database.PullRequest{}
	}

	respondWithJSON(w, http.StatusOK, pulls)
}

// getPullRequest returns a single stored pull request.
// GET /v1/repos/{owner}/{name}/pulls/{number}
func (h *Handler) getPullRequest(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 32)
	if err != nil || number <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid pull request number.")
		return
	}

	pr, err := h.db.GetPullRequest(r.Context(), database.GetPullRequestParams{
		RepoName: repoName(r),
		Number:   int32(number),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Pull request not found")
			return
		}
		h.logger.Error("Failed to get pull request", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, pr)
}

// getTopCommitters handles the request for top commit authors.
// GET /v1/repos/{owner}/{name}/stats/top-committers?limit=N
func (h *Handler) getTopCommitters(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "10" // Default limit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 100.")
		return
	}

	authors, err := h.db.GetTopNCommitAuthors(r.Context(), database.GetTopNCommitAuthorsParams{
		RepoName: repoName(r),
		Limit:    int32(limit),
	})
	if err != nil {
		h.logger.Error("Failed to get top commit authors", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if authors == nil {
		authors = []database.GetTopNCommitAuthorsRow{}
	}

	respondWithJSON(w, http.StatusOK, authors)
}

// repoName rebuilds the "owner/name" identifier rows are keyed by.
func repoName(r *http.Request) string {
	return chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")
}
