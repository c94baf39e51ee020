package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

const (
	projectKeyPrefix = "boq:project:" // project JSON: boq:project:{public_id}
	projectIndexKey  = "boq:projects" // set of public ids
	projectLiveTTL   = 90 * 24 * time.Hour
)

// LiveRepository keeps in-flight projects in Redis, one JSON value per
// project plus an index set. Writes are last-write-wins; the single-writer
// workflow makes that sufficient.
type LiveRepository struct {
	client *redis.Client
}

func NewLiveRepository(client *redis.Client) *LiveRepository {
	return &LiveRepository{client: client}
}

// Create stores a new project, assigning IDs if missing.
func (r *LiveRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.PublicID == "" {
		p.PublicID = newPublicID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(p.PublicID), data, projectLiveTTL)
	pipe.SAdd(ctx, projectIndexKey, p.PublicID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by public id.
func (r *LiveRepository) Get(ctx context.Context, publicID string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.key(publicID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &p, nil
}

// Update rewrites the stored project.
func (r *LiveRepository) Update(ctx context.Context, p *domain.Project) error {
	if p.PublicID == "" {
		return domain.ErrProjectNotFound
	}
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := r.client.Set(ctx, r.key(p.PublicID), data, projectLiveTTL).Err(); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// List returns all live projects, skipping index entries whose value has
// expired.
func (r *LiveRepository) List(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err == domain.ErrProjectNotFound {
			r.client.SRem(ctx, projectIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Delete removes a project and its index entry.
func (r *LiveRepository) Delete(ctx context.Context, publicID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(publicID))
	pipe.SRem(ctx, projectIndexKey, publicID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole live set in one pipeline. Used by snapshot
// import, which is all-or-nothing: validation happens before this is called.
func (r *LiveRepository) ReplaceAll(ctx context.Context, projects []domain.Project) error {
	existing, err := r.client.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read project index: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, id := range existing {
		pipe.Del(ctx, r.key(id))
	}
	pipe.Del(ctx, projectIndexKey)

	for i := range projects {
		p := &projects[i]
		if p.PublicID == "" {
			p.PublicID = newPublicID()
		}
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal project: %w", err)
		}
		pipe.Set(ctx, r.key(p.PublicID), data, projectLiveTTL)
		pipe.SAdd(ctx, projectIndexKey, p.PublicID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace projects: %w", err)
	}
	return nil
}

func (r *LiveRepository) key(publicID string) string {
	return projectKeyPrefix + publicID
}

func newPublicID() string {
	return "boq_" + uuid.New().String()[:8]
}
