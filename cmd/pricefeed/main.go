// pricefeed fetches public-cloud compute reference prices and imports them
// into the catalog store.
//
//	pricefeed fetch  [-out prices.csv]
//	pricefeed import [-in prices.csv]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	pricing "github.com/aws/aws-sdk-go-v2/service/pricing"

	"github.com/sify-labs/boq-backend/config"
	"github.com/sify-labs/boq-backend/internal/bootstrap"
	"github.com/sify-labs/boq-backend/internal/catalog"
	"github.com/sify-labs/boq-backend/internal/catalog/feed"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "fetch":
		fs := flag.NewFlagSet("fetch", flag.ExitOnError)
		out := fs.String("out", "prices.csv", "output CSV path")
		fs.Parse(os.Args[2:])
		if err := runFetch(ctx, *out); err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		in := fs.String("in", "prices.csv", "input CSV path")
		fs.Parse(os.Args[2:])
		if err := runImport(ctx, *in); err != nil {
			log.Fatalf("import failed: %v", err)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pricefeed fetch|import [flags]")
	os.Exit(2)
}

func runFetch(ctx context.Context, outPath string) error {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion("us-east-1"))
	if err != nil {
		return fmt.Errorf("aws config load: %w", err)
	}

	rows, err := feed.FetchAWSComputePrices(ctx, pricing.NewFromConfig(awsCfg), feed.DefaultFetchConfig())
	if err != nil {
		return err
	}
	log.Printf("fetched %d reference prices", len(rows))

	return feed.WriteCSV(outPath, rows)
}

func runImport(ctx context.Context, inPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		return err
	}
	defer pool.Close()

	rows, err := feed.ReadCSV(inPath)
	if err != nil {
		return err
	}

	store := catalog.NewReferencePriceStore(pool)
	if err := store.UpsertBatch(ctx, rows); err != nil {
		return err
	}
	log.Printf("imported %d reference prices", len(rows))
	return nil
}
