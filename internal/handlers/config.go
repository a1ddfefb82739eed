package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gamesetuphub/backend/internal/auth"
	"github.com/gamesetuphub/backend/internal/services"
	"github.com/gamesetuphub/backend/internal/store"
	"github.com/gamesetuphub/backend/types"
)

// ConfigHandler provides HTTP handlers for game configurations.
type ConfigHandler struct {
	configService *services.ConfigService
	auth          *auth.Authenticator
}

// NewConfigHandler constructs a handler with the provided dependencies.
func NewConfigHandler(configService *services.ConfigService, authenticator *auth.Authenticator) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
		auth:          authenticator,
	}
}

// ConfigRouter registers configuration routes on the given router.
func ConfigRouter(r chi.Router, configService *services.ConfigService, authenticator *auth.Authenticator) {
	handler := NewConfigHandler(configService, authenticator)

	r.Route("/api/configs", func(r chi.Router) {
		r.Get("/", handler.ListConfigs)
		r.Post("/", handler.CreateConfig)
		r.Route("/{configID}", func(r chi.Router) {
			r.Get("/", handler.GetConfig)
			r.Put("/", handler.UpdateConfig)
			r.Delete("/", handler.DeleteConfig)
			r.Post("/versions", handler.AddVersion)
			r.Get("/versions", handler.ListVersions)
			r.Post("/comments", handler.AddComment)
			r.Get("/comments", handler.ListComments)
			r.Post("/like", handler.Like)
			r.Post("/unlike", handler.Unlike)
		})
	})
}

// CreateConfig stores a new configuration authored by the caller.
func (h *ConfigHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	identity, err := h.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Game = strings.TrimSpace(req.Game)
	if req.Game == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "game and content required")
		return
	}

	created, err := h.configService.Create(r.Context(), types.Config{
		Game:        req.Game,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		Author: types.UserRef{
			ID:       identity.ID,
			Username: identity.Username,
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create config")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListConfigs returns a filtered, sorted, paginated listing.
func (h *ConfigHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	filter := store.ListFilter{
		Query: strings.TrimSpace(query.Get("q")),
		Game:  strings.TrimSpace(query.Get("game")),
		Tag:   strings.TrimSpace(query.Get("tag")),
	}

	results, total, err := h.configService.List(r.Context(), filter, query.Get("sort"), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list configs")
		return
	}

	writeJSON(w, http.StatusOK, ConfigListResponse{
		Total:    total,
		Page:     page,
		PageSize: limit,
		Results:  results,
	})
}

// GetConfig returns a single configuration.
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.Get(r.Context(), chi.URLParam(r, "configID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch config")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// UpdateConfig applies a partial update for the author. A content
// change pushes the superseded content onto the version history.
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.requireAuthor(w, r)
	if !ok {
		return
	}

	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.configService.Update(r.Context(), cfg.ID.Hex(), store.ConfigUpdate{
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update config")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteConfig removes a configuration and its sub-records.
func (h *ConfigHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.requireAuthor(w, r)
	if !ok {
		return
	}

	if err := h.configService.Delete(r.Context(), cfg.ID.Hex()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete config")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}

// AddVersion replaces the content, archiving the prior state.
func (h *ConfigHandler) AddVersion(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.requireAuthor(w, r)
	if !ok {
		return
	}

	var req AddVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content required")
		return
	}

	updated, err := h.configService.AddVersion(r.Context(), cfg.ID.Hex(), req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add version")
		return
	}

	writeJSON(w, http.StatusOK, VersionListResponse{Versions: updated.Versions})
}

// ListVersions returns the version history, oldest first.
func (h *ConfigHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.Get(r.Context(), chi.URLParam(r, "configID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch config")
		return
	}

	versions := cfg.Versions
	if versions == nil {
		versions = []types.Version{}
	}
	writeJSON(w, http.StatusOK, versions)
}

// AddComment appends a comment from any authenticated user.
func (h *ConfigHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity, err := h.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	comments, err := h.configService.AddComment(r.Context(), chi.URLParam(r, "configID"), types.Comment{
		AuthorID:   identity.ID,
		AuthorName: identity.Username,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add comment")
		return
	}

	writeJSON(w, http.StatusOK, CommentListResponse{Comments: comments})
}

// ListComments returns the comment thread, oldest first.
func (h *ConfigHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.Get(r.Context(), chi.URLParam(r, "configID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch config")
		return
	}

	comments := cfg.Comments
	if comments == nil {
		comments = []types.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// Like adds the caller to the liked-by set. Idempotent.
func (h *ConfigHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.configService.Like)
}

// Unlike removes the caller from the liked-by set. Idempotent.
func (h *ConfigHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.configService.Unlike)
}

func (h *ConfigHandler) toggleLike(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, id, userID string) (int, error)) {
	identity, err := h.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	likes, err := toggle(r.Context(), chi.URLParam(r, "configID"), identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update likes")
		return
	}

	writeJSON(w, http.StatusOK, LikeResponse{Likes: likes})
}

// requireAuthor authenticates the caller, loads the configuration and
// enforces ownership. On failure it writes the response and returns
// ok=false.
func (h *ConfigHandler) requireAuthor(w http.ResponseWriter, r *http.Request) (types.Config, bool) {
	identity, err := h.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return types.Config{}, false
	}

	cfg, err := h.configService.Get(r.Context(), chi.URLParam(r, "configID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return types.Config{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch config")
		return types.Config{}, false
	}

	if cfg.Author.ID != identity.ID {
		writeError(w, http.StatusForbidden, "forbidden")
		return types.Config{}, false
	}

	return cfg, true
}

type CreateConfigRequest struct {
	Game        string   `json:"game"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

type UpdateConfigRequest struct {
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
}

type AddVersionRequest struct {
	Content string `json:"content"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

// ConfigListResponse is the paginated list response payload.
type ConfigListResponse struct {
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Results  []types.Config `json:"results"`
}

type VersionListResponse struct {
	Versions []types.Version `json:"versions"`
}

type CommentListResponse struct {
	Comments []types.Comment `json:"comments"`
}

type LikeResponse struct {
	Likes int `json:"likes"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
