// Package transfer implements the JSON snapshot export/import of the live
// project set.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

const SnapshotVersion = "1.0"

// ErrInvalidSnapshot marks payloads missing a projects array. Import leaves
// existing state untouched when it is returned.
var ErrInvalidSnapshot = errors.New("invalid data format")

// Snapshot is the interchange envelope.
type Snapshot struct {
	Projects   []domain.Project `json:"projects"`
	ExportDate time.Time        `json:"export_date"`
	Version    string           `json:"version"`
}

// ProjectSource is the slice of the live repository the snapshot needs.
type ProjectSource interface {
	List(ctx context.Context) ([]domain.Project, error)
	ReplaceAll(ctx context.Context, projects []domain.Project) error
}

// Export builds a snapshot of the current live projects.
func Export(ctx context.Context, src ProjectSource) (*Snapshot, error) {
	projects, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Projects:   projects,
		ExportDate: time.Now().UTC(),
		Version:    SnapshotVersion,
	}, nil
}

// Import validates and applies a snapshot payload. The only structural
// requirement is a present, array-typed "projects" field; anything else is
// rejected before any write happens.
func Import(ctx context.Context, src ProjectSource, payload []byte) (int, error) {
	projects, err := Validate(payload)
	if err != nil {
		return 0, err
	}
	if err := src.ReplaceAll(ctx, projects); err != nil {
		return 0, err
	}
	return len(projects), nil
}

// Validate checks the snapshot shape and decodes its projects. The field must
// be an actual JSON array; null decodes fine into a nil slice but is not one.
func Validate(payload []byte) ([]domain.Project, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, ErrInvalidSnapshot
	}
	raw, ok := probe["projects"]
	if !ok {
		return nil, ErrInvalidSnapshot
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidSnapshot
	}

	var projects []domain.Project
	if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, ErrInvalidSnapshot
	}
	return projects, nil
}
