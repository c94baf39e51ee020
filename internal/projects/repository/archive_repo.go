package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

// ArchiveRepository keeps immutable snapshots of approved projects in
// Postgres. Live state stays in Redis; a row lands here exactly once, when a
// project reaches Approved.
type ArchiveRepository struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// ArchiveEntry is one archived project snapshot.
type ArchiveEntry struct {
	PublicID     string         `json:"public_id"`
	CustomerName string         `json:"customer_name"`
	ProjectName  string         `json:"project_name"`
	FlowType     string         `json:"flow_type"`
	TotalPrice   int64          `json:"total_price"`
	ApprovedAt   sql.NullTime   `json:"approved_at"`
	Snapshot     domain.Project `json:"snapshot"`
}

// Archive inserts a snapshot of an approved project. Re-archiving the same
// public id is a conflict, surfaced as ErrAlreadyApproved.
func (r *ArchiveRepository) Archive(ctx context.Context, p *domain.Project, totalPrice int64) error {
	if p.Status != domain.StatusApproved {
		return domain.ErrInvalidStatus
	}

	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	const q = `
INSERT INTO project_snapshots (public_id, customer_name, project_name, flow_type, total_price, approved_at, snapshot)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err = r.db.ExecContext(ctx, q,
		p.PublicID, p.CustomerName, p.ProjectName, p.FlowType, totalPrice, p.CompletedAt, snapshot)
	if err != nil {
		// unique violation on public_id → already archived
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyApproved
		}
		return err
	}
	return nil
}

// List returns archived snapshots, newest first.
func (r *ArchiveRepository) List(ctx context.Context) ([]ArchiveEntry, error) {
	const q = `
SELECT public_id, customer_name, project_name, flow_type, total_price, approved_at, snapshot
FROM project_snapshots
ORDER BY approved_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ArchiveEntry, 0, 16)
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns one archived snapshot by public id.
func (r *ArchiveRepository) Get(ctx context.Context, publicID string) (*ArchiveEntry, error) {
	const q = `
SELECT public_id, customer_name, project_name, flow_type, total_price, approved_at, snapshot
FROM project_snapshots
WHERE public_id = $1;
`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, publicID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &e, nil
}

func scanEntry(scan func(dest ...any) error) (ArchiveEntry, error) {
	var (
		e    ArchiveEntry
		blob []byte
	)
	if err := scan(&e.PublicID, &e.CustomerName, &e.ProjectName, &e.FlowType,
		&e.TotalPrice, &e.ApprovedAt, &blob); err != nil {
		return e, err
	}
	if err := json.Unmarshal(blob, &e.Snapshot); err != nil {
		return e, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return e, nil
}
