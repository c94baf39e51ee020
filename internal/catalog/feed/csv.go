package feed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sify-labs/boq-backend/internal/catalog"
)

var csvHeader = []string{
	"sku_id", "provider", "region", "instance_type",
	"vcpu", "memory_gb", "price_per_hour", "currency", "unit", "fetched_at",
}

// WriteCSV dumps fetched reference rows so a fetch run can be inspected and
// re-imported without hitting the Pricing API again.
func WriteCSV(path string, rows []catalog.ReferencePriceRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.SKUID, r.Provider, r.Region, r.InstanceType,
			intPtrStr(r.VCPU), floatPtrStr(r.MemoryGB), floatPtrStr(r.PricePerHour),
			r.Currency, r.Unit, r.FetchedAt.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads reference rows from a previous fetch run.
func ReadCSV(path string) ([]catalog.ReferencePriceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	rows := make([]catalog.ReferencePriceRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			continue
		}
		row := catalog.ReferencePriceRow{
			SKUID:        rec[0],
			Provider:     rec[1],
			Region:       rec[2],
			InstanceType: rec[3],
			Currency:     rec[7],
			Unit:         rec[8],
		}
		if n, err := strconv.Atoi(rec[4]); err == nil {
			row.VCPU = &n
		}
		if f, err := strconv.ParseFloat(rec[5], 64); err == nil {
			row.MemoryGB = &f
		}
		if f, err := strconv.ParseFloat(rec[6], 64); err == nil {
			row.PricePerHour = &f
		}
		if t, err := time.Parse(time.RFC3339, rec[9]); err == nil {
			row.FetchedAt = t
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func intPtrStr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatPtrStr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
