// Package feed pulls public-cloud compute prices used as benchmark reference
// data next to the internal rate card. Reference prices never enter the
// floor-price formula.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	pricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"golang.org/x/time/rate"

	"github.com/sify-labs/boq-backend/internal/catalog"
)

// FetchConfig throttles the Pricing API crawl.
type FetchConfig struct {
	MaxRecords     int
	RateLimit      rate.Limit
	BurstSize      int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	MaxRetries     int
}

// DefaultFetchConfig keeps the crawl small; reference data only needs a
// representative sample, not the full EC2 price book.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		MaxRecords:     2000,
		RateLimit:      8,
		BurstSize:      16,
		BackoffInitial: 1 * time.Second,
		BackoffMax:     30 * time.Second,
		MaxRetries:     3,
	}
}

var reMemoryGB = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(GiB|GB)`)

// ProductsClient is the slice of the Pricing API the fetcher needs.
type ProductsClient interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// FetchAWSComputePrices crawls shared on-demand Linux EC2 prices and maps
// them onto reference price rows.
func FetchAWSComputePrices(ctx context.Context, client ProductsClient, cfg FetchConfig) ([]catalog.ReferencePriceRow, error) {
	limiter := rate.NewLimiter(cfg.RateLimit, cfg.BurstSize)

	input := &pricing.GetProductsInput{
		ServiceCode:   aws.String("AmazonEC2"),
		FormatVersion: aws.String("aws_v1"),
		Filters: []types.Filter{
			{Type: types.FilterTypeTermMatch, Field: aws.String("operatingSystem"), Value: aws.String("Linux")},
			{Type: types.FilterTypeTermMatch, Field: aws.String("tenancy"), Value: aws.String("Shared")},
			{Type: types.FilterTypeTermMatch, Field: aws.String("capacitystatus"), Value: aws.String("Used")},
		},
	}

	var (
		rows      []catalog.ReferencePriceRow
		nextToken *string
		backoff   = cfg.BackoffInitial
	)

	for {
		if cfg.MaxRecords > 0 && len(rows) >= cfg.MaxRecords {
			log.Printf("[feed] reached max records limit: %d", len(rows))
			break
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		input.NextToken = nextToken

		var (
			resp *pricing.GetProductsOutput
			err  error
		)
		for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
			resp, err = client.GetProducts(ctx, input)
			if err == nil {
				backoff = cfg.BackoffInitial
				break
			}
			if attempt == cfg.MaxRetries {
				return nil, fmt.Errorf("GetProducts failed after %d retries: %w", cfg.MaxRetries+1, err)
			}
			log.Printf("[feed] attempt %d failed: %v, retrying in %v", attempt+1, err, backoff)
			select {
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * 1.5)
				if backoff > cfg.BackoffMax {
					backoff = cfg.BackoffMax
				}
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		for _, pl := range resp.PriceList {
			if cfg.MaxRecords > 0 && len(rows) >= cfg.MaxRecords {
				break
			}
			if row, ok := parsePriceListItem(pl); ok {
				rows = append(rows, row)
			}
		}

		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		nextToken = resp.NextToken
	}

	return rows, nil
}

// parsePriceListItem extracts one reference row from a PriceList JSON blob.
// Items without an on-demand hourly price are skipped.
func parsePriceListItem(pl string) (catalog.ReferencePriceRow, bool) {
	var js map[string]interface{}
	if err := json.Unmarshal([]byte(pl), &js); err != nil {
		return catalog.ReferencePriceRow{}, false
	}

	prod, _ := js["product"].(map[string]interface{})
	attributes, _ := prod["attributes"].(map[string]interface{})
	if attributes == nil {
		return catalog.ReferencePriceRow{}, false
	}

	sku, _ := prod["sku"].(string)
	instanceType, _ := attributes["instanceType"].(string)
	region, _ := attributes["regionCode"].(string)
	if sku == "" || instanceType == "" {
		return catalog.ReferencePriceRow{}, false
	}

	row := catalog.ReferencePriceRow{
		SKUID:        sku,
		Provider:     "aws",
		Region:       region,
		InstanceType: instanceType,
		Currency:     "USD",
		Unit:         "Hrs",
		FetchedAt:    time.Now().UTC(),
	}

	if v, ok := attributes["vcpu"].(string); ok {
		if n, err := strconv.Atoi(v); err == nil {
			row.VCPU = &n
		}
	}
	if m, ok := attributes["memory"].(string); ok {
		if match := reMemoryGB.FindStringSubmatch(m); match != nil {
			if f, err := strconv.ParseFloat(match[1], 64); err == nil {
				row.MemoryGB = &f
			}
		}
	}

	price, ok := onDemandHourly(js)
	if !ok {
		return catalog.ReferencePriceRow{}, false
	}
	row.PricePerHour = &price
	return row, true
}

// onDemandHourly digs the first on-demand USD/hr dimension out of the terms
// tree.
func onDemandHourly(js map[string]interface{}) (float64, bool) {
	terms, _ := js["terms"].(map[string]interface{})
	onDemand, _ := terms["OnDemand"].(map[string]interface{})
	for _, t := range onDemand {
		term, _ := t.(map[string]interface{})
		dims, _ := term["priceDimensions"].(map[string]interface{})
		for _, d := range dims {
			dim, _ := d.(map[string]interface{})
			unit, _ := dim["unit"].(string)
			if !strings.EqualFold(unit, "Hrs") {
				continue
			}
			ppu, _ := dim["pricePerUnit"].(map[string]interface{})
			usd, _ := ppu["USD"].(string)
			if f, err := strconv.ParseFloat(usd, 64); err == nil && f > 0 {
				return f, true
			}
		}
	}
	return 0, false
}
