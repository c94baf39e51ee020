package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferencePriceRow is one public-cloud compute price used for benchmark
// comparisons next to the internal rate card.
type ReferencePriceRow struct {
	SKUID        string                 `json:"sku_id"`
	Provider     string                 `json:"provider"`
	Region       string                 `json:"region"`
	InstanceType string                 `json:"instance_type"`
	VCPU         *int                   `json:"vcpu,omitempty"`
	MemoryGB     *float64               `json:"memory_gb,omitempty"`
	PricePerHour *float64               `json:"price_per_hour,omitempty"`
	Currency     string                 `json:"currency"`
	Unit         string                 `json:"unit"`
	FetchedAt    time.Time              `json:"fetched_at"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
}

// ReferencePriceStore persists reference prices in Postgres.
type ReferencePriceStore struct {
	pool *pgxpool.Pool
}

func NewReferencePriceStore(pool *pgxpool.Pool) *ReferencePriceStore {
	return &ReferencePriceStore{pool: pool}
}

const upsertSQL = `
INSERT INTO compute_reference_prices
  (sku_id, provider, region, instance_type, vcpu, memory_gb, price_per_hour, currency, unit, fetched_at, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
ON CONFLICT (sku_id, region) DO UPDATE
  SET instance_type = EXCLUDED.instance_type,
      vcpu = EXCLUDED.vcpu,
      memory_gb = EXCLUDED.memory_gb,
      price_per_hour = EXCLUDED.price_per_hour,
      currency = EXCLUDED.currency,
      unit = EXCLUDED.unit,
      fetched_at = EXCLUDED.fetched_at,
      metadata = EXCLUDED.metadata,
      updated_at = now()
;`

// Upsert writes a single reference price row.
func (s *ReferencePriceStore) Upsert(ctx context.Context, r ReferencePriceRow) error {
	metaJSON, _ := json.Marshal(r.Metadata)
	_, err := s.pool.Exec(ctx, upsertSQL,
		r.SKUID, r.Provider, r.Region, r.InstanceType, r.VCPU, r.MemoryGB, r.PricePerHour,
		r.Currency, r.Unit, r.FetchedAt.UTC(), metaJSON,
	)
	return err
}

// UpsertBatch writes rows inside one transaction.
func (s *ReferencePriceStore) UpsertBatch(ctx context.Context, rows []ReferencePriceRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range rows {
		metaJSON, _ := json.Marshal(r.Metadata)
		if _, err := tx.Exec(ctx, upsertSQL,
			r.SKUID, r.Provider, r.Region, r.InstanceType, r.VCPU, r.MemoryGB, r.PricePerHour,
			r.Currency, r.Unit, r.FetchedAt.UTC(), metaJSON,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// FindNearest returns the closest reference prices for a (vcpu, memory)
// shape, exact matches first (distance 0), then by vcpu+memory distance.
func (s *ReferencePriceStore) FindNearest(ctx context.Context, vcpu int, memoryGB float64, limit int) ([]ReferencePriceRow, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT sku_id, provider, region, instance_type, vcpu, memory_gb, price_per_hour, currency, unit,
       fetched_at,
       (abs(vcpu - $1) + abs(memory_gb - $2)) as dist
FROM compute_reference_prices
WHERE price_per_hour IS NOT NULL
ORDER BY dist ASC, price_per_hour ASC
LIMIT $3
`
	rows, err := s.pool.Query(ctx, q, vcpu, memoryGB, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []ReferencePriceRow
	for rows.Next() {
		var r ReferencePriceRow
		if err := rows.Scan(&r.SKUID, &r.Provider, &r.Region, &r.InstanceType, &r.VCPU, &r.MemoryGB,
			&r.PricePerHour, &r.Currency, &r.Unit, &r.FetchedAt, &r.Distance); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
