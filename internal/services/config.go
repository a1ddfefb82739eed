package services

import (
	"context"

	"github.com/gamesetuphub/backend/internal/store"
	"github.com/gamesetuphub/backend/types"
)

// ConfigRepository defines persistence operations for configurations.
type ConfigRepository interface {
	Create(ctx context.Context, cfg types.Config) (types.Config, error)
	Get(ctx context.Context, id string) (types.Config, error)
	List(ctx context.Context, filter store.ListFilter, sort string, offset, limit int) ([]types.Config, int, error)
	Update(ctx context.Context, id string, update store.ConfigUpdate) (types.Config, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, comment types.Comment) ([]types.Comment, error)
	Like(ctx context.Context, id, userID string) (int, error)
	Unlike(ctx context.Context, id, userID string) (int, error)
}

// ConfigService encapsulates configuration use-cases.
type ConfigService struct {
	repo ConfigRepository
}

func NewConfigService(repo ConfigRepository) *ConfigService {
	return &ConfigService{repo: repo}
}

func (s *ConfigService) Create(ctx context.Context, cfg types.Config) (types.Config, error) {
	return s.repo.Create(ctx, cfg)
}

func (s *ConfigService) Get(ctx context.Context, id string) (types.Config, error) {
	return s.repo.Get(ctx, id)
}

func (s *ConfigService) List(ctx context.Context, filter store.ListFilter, sort string, offset, limit int) ([]types.Config, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, filter, sort, offset, limit)
}

func (s *ConfigService) Update(ctx context.Context, id string, update store.ConfigUpdate) (types.Config, error) {
	return s.repo.Update(ctx, id, update)
}

// AddVersion replaces the configuration content. The repository pushes
// the superseded content onto the version history, so every version is
// a prior state and the history never contains the current content.
func (s *ConfigService) AddVersion(ctx context.Context, id, content string) (types.Config, error) {
	return s.repo.Update(ctx, id, store.ConfigUpdate{Content: &content})
}

func (s *ConfigService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ConfigService) AddComment(ctx context.Context, id string, comment types.Comment) ([]types.Comment, error) {
	return s.repo.AddComment(ctx, id, comment)
}

func (s *ConfigService) Like(ctx context.Context, id, userID string) (int, error) {
	return s.repo.Like(ctx, id, userID)
}

func (s *ConfigService) Unlike(ctx context.Context, id, userID string) (int, error) {
	return s.repo.Unlike(ctx, id, userID)
}
