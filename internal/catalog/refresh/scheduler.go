// Package refresh schedules the nightly reference-price update.
package refresh

import (
	"context"
	"log"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	pricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/robfig/cron/v3"

	"github.com/sify-labs/boq-backend/internal/catalog"
	"github.com/sify-labs/boq-backend/internal/catalog/feed"
)

type Scheduler struct {
	store *catalog.ReferencePriceStore
}

func NewScheduler(store *catalog.ReferencePriceStore) *Scheduler {
	return &Scheduler{store: store}
}

// Start registers the nightly job (12:00 AM) and starts the cron loop.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.runNightly()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (refreshing reference prices nightly at 12:00AM)")
	c.Start()
}

func (s *Scheduler) runNightly() {
	log.Println("Nightly reference-price refresh started...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion("us-east-1"))
	if err != nil {
		log.Printf("aws config load failed: %v", err)
		return
	}

	rows, err := feed.FetchAWSComputePrices(ctx, pricing.NewFromConfig(cfg), feed.DefaultFetchConfig())
	if err != nil {
		log.Printf("reference price fetch failed: %v", err)
		return
	}

	if err := s.store.UpsertBatch(ctx, rows); err != nil {
		log.Printf("reference price import failed: %v", err)
		return
	}
	log.Printf("Nightly refresh completed: %d rows at %s", len(rows), time.Now().Format(time.RFC1123))
}
