package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamesetuphub/backend/internal/store"
	"github.com/gamesetuphub/backend/types"
)

// memUserRepo is an in-memory services.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]types.User{}}
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = user
	return user, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, update store.ProfileUpdate) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	if update.DisplayName != nil {
		user.Profile.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		user.Profile.Bio = *update.Bio
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return user, nil
}

// memConfigRepo is an in-memory services.ConfigRepository. Creation
// timestamps are strictly increasing so newest-first ordering is
// deterministic.
type memConfigRepo struct {
	mu      sync.Mutex
	configs map[string]types.Config
	clock   time.Time
}

func newMemConfigRepo() *memConfigRepo {
	return &memConfigRepo{
		configs: map[string]types.Config{},
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memConfigRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memConfigRepo) Create(_ context.Context, cfg types.Config) (types.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg.ID = primitive.NewObjectID()
	now := r.tick()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	if cfg.Tags == nil {
		cfg.Tags = []string{}
	}
	cfg.LikedBy = []string{}
	cfg.Comments = []types.Comment{}
	cfg.Versions = []types.Version{}
	cfg.Likes = 0
	r.configs[cfg.ID.Hex()] = cfg
	return cfg, nil
}

func (r *memConfigRepo) Get(_ context.Context, id string) (types.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[id]
	if !ok {
		return types.Config{}, store.ErrNotFound
	}
	return cfg, nil
}

func matches(cfg types.Config, filter store.ListFilter) bool {
	if filter.Game != "" && !strings.Contains(strings.ToLower(cfg.Game), strings.ToLower(filter.Game)) {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, tag := range cfg.Tags {
			if tag == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Query != "" {
		haystack := strings.ToLower(strings.Join(append([]string{cfg.Game, cfg.Description, cfg.Content}, cfg.Tags...), " "))
		if !strings.Contains(haystack, strings.ToLower(filter.Query)) {
			return false
		}
	}
	return true
}

func (r *memConfigRepo) List(_ context.Context, filter store.ListFilter, sortKey string, offset, limit int) ([]types.Config, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matching := []types.Config{}
	for _, cfg := range r.configs {
		if matches(cfg, filter) {
			matching = append(matching, cfg)
		}
	}

	if sortKey == store.SortPopular {
		sort.Slice(matching, func(i, j int) bool { return matching[i].Likes > matching[j].Likes })
	} else {
		sort.Slice(matching, func(i, j int) bool { return matching[i].CreatedAt.After(matching[j].CreatedAt) })
	}

	total := len(matching)
	if offset >= total {
		return []types.Config{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

func (r *memConfigRepo) Update(_ context.Context, id string, update store.ConfigUpdate) (types.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[id]
	if !ok {
		return types.Config{}, store.ErrNotFound
	}
	now := r.tick()
	if update.Description != nil {
		cfg.Description = *update.Description
	}
	if update.Tags != nil {
		cfg.Tags = *update.Tags
	}
	if update.Content != nil {
		cfg.Versions = append(cfg.Versions, types.Version{Content: cfg.Content, CreatedAt: now})
		cfg.Content = *update.Content
	}
	cfg.UpdatedAt = now
	r.configs[id] = cfg
	return cfg, nil
}

func (r *memConfigRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.configs, id)
	return nil
}

func (r *memConfigRepo) AddComment(_ context.Context, id string, comment types.Comment) ([]types.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cfg.Comments = append(cfg.Comments, comment)
	cfg.UpdatedAt = r.tick()
	r.configs[id] = cfg
	return cfg.Comments, nil
}

func (r *memConfigRepo) Like(_ context.Context, id, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	for _, liker := range cfg.LikedBy {
		if liker == userID {
			return cfg.Likes, nil
		}
	}
	cfg.LikedBy = append(cfg.LikedBy, userID)
	cfg.Likes = len(cfg.LikedBy)
	r.configs[id] = cfg
	return cfg.Likes, nil
}

func (r *memConfigRepo) Unlike(_ context.Context, id, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	kept := cfg.LikedBy[:0]
	for _, liker := range cfg.LikedBy {
		if liker != userID {
			kept = append(kept, liker)
		}
	}
	cfg.LikedBy = kept
	cfg.Likes = len(cfg.LikedBy)
	r.configs[id] = cfg
	return cfg.Likes, nil
}
