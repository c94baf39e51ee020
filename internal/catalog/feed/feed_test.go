package feed

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	pricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sify-labs/boq-backend/internal/catalog"
)

func priceListItem(t *testing.T, sku, instanceType, vcpu, memory, usd string) string {
	item := map[string]interface{}{
		"product": map[string]interface{}{
			"sku": sku,
			"attributes": map[string]interface{}{
				"instanceType": instanceType,
				"regionCode":   "ap-south-1",
				"vcpu":         vcpu,
				"memory":       memory,
			},
		},
		"terms": map[string]interface{}{
			"OnDemand": map[string]interface{}{
				"term1": map[string]interface{}{
					"priceDimensions": map[string]interface{}{
						"dim1": map[string]interface{}{
							"unit":         "Hrs",
							"pricePerUnit": map[string]interface{}{"USD": usd},
						},
					},
				},
			},
		},
	}
	b, err := json.Marshal(item)
	require.NoError(t, err)
	return string(b)
}

// fakeProductsClient pages through canned responses.
type fakeProductsClient struct {
	pages [][]string
	calls int
}

func (f *fakeProductsClient) GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	page := f.pages[f.calls]
	f.calls++

	out := &pricing.GetProductsOutput{PriceList: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func testFetchConfig() FetchConfig {
	cfg := DefaultFetchConfig()
	cfg.RateLimit = 1000
	cfg.BurstSize = 1000
	cfg.BackoffInitial = time.Millisecond
	return cfg
}

func TestFetchAWSComputePrices_Paginates(t *testing.T) {
	client := &fakeProductsClient{pages: [][]string{
		{
			priceListItem(t, "SKU1", "t3.medium", "2", "4 GiB", "0.0416"),
			priceListItem(t, "SKU2", "m5.large", "2", "8 GiB", "0.096"),
		},
		{
			priceListItem(t, "SKU3", "c5.xlarge", "4", "8 GiB", "0.17"),
		},
	}}

	rows, err := FetchAWSComputePrices(context.Background(), client, testFetchConfig())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, client.calls)

	first := rows[0]
	assert.Equal(t, "SKU1", first.SKUID)
	assert.Equal(t, "aws", first.Provider)
	assert.Equal(t, "ap-south-1", first.Region)
	require.NotNil(t, first.VCPU)
	assert.Equal(t, 2, *first.VCPU)
	require.NotNil(t, first.MemoryGB)
	assert.Equal(t, 4.0, *first.MemoryGB)
	require.NotNil(t, first.PricePerHour)
	assert.Equal(t, 0.0416, *first.PricePerHour)
}

func TestFetchAWSComputePrices_MaxRecords(t *testing.T) {
	client := &fakeProductsClient{pages: [][]string{
		{
			priceListItem(t, "SKU1", "t3.medium", "2", "4 GiB", "0.0416"),
			priceListItem(t, "SKU2", "m5.large", "2", "8 GiB", "0.096"),
			priceListItem(t, "SKU3", "c5.xlarge", "4", "8 GiB", "0.17"),
		},
		{
			priceListItem(t, "SKU4", "r5.large", "2", "16 GiB", "0.126"),
		},
	}}

	cfg := testFetchConfig()
	cfg.MaxRecords = 2

	rows, err := FetchAWSComputePrices(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, client.calls, "stops before fetching the second page")
}

func TestFetchAWSComputePrices_SkipsUnpriced(t *testing.T) {
	noTerms := `{"product":{"sku":"SKUX","attributes":{"instanceType":"t3.nano","regionCode":"ap-south-1"}}}`
	client := &fakeProductsClient{pages: [][]string{
		{
			noTerms,
			`not even json`,
			priceListItem(t, "SKU1", "t3.medium", "2", "4 GiB", "0.0416"),
		},
	}}

	rows, err := FetchAWSComputePrices(context.Background(), client, testFetchConfig())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU1", rows[0].SKUID)
}

func TestCSVRoundTrip(t *testing.T) {
	vcpu := 4
	mem := 16.0
	price := 0.17
	rows := []catalog.ReferencePriceRow{
		{
			SKUID:        "SKU1",
			Provider:     "aws",
			Region:       "ap-south-1",
			InstanceType: "c5.xlarge",
			VCPU:         &vcpu,
			MemoryGB:     &mem,
			PricePerHour: &price,
			Currency:     "USD",
			Unit:         "Hrs",
			FetchedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			SKUID:        "SKU2",
			Provider:     "aws",
			Region:       "ap-south-1",
			InstanceType: "t3.nano",
			Currency:     "USD",
			Unit:         "Hrs",
			FetchedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, WriteCSV(path, rows))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "SKU1", got[0].SKUID)
	require.NotNil(t, got[0].VCPU)
	assert.Equal(t, 4, *got[0].VCPU)
	require.NotNil(t, got[0].PricePerHour)
	assert.Equal(t, 0.17, *got[0].PricePerHour)

	// Optional fields stay nil through the round trip.
	assert.Nil(t, got[1].VCPU)
	assert.Nil(t, got[1].PricePerHour)
	assert.Equal(t, rows[0].FetchedAt, got[0].FetchedAt)
}

func TestReadCSV_EmptyFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, nil))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
