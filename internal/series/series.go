// Package series loads the canonical sales file and shapes per-product
// monthly series for forecasting.
package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"siprev/internal"
)

const dateLayout = "2006-01-02"

// LoadCSV reads the canonical Date,Product,Quantity file. Absence of the
// file means ingestion has not run yet; callers turn that into their own
// user-facing signal.
func LoadCSV(path string) ([]internal.SalesRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read canonical header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("canonical file %s: want 3 columns, got %d", path, len(header))
	}

	out := []internal.SalesRecord{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		date, err := time.ParseInLocation(dateLayout, record[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("canonical file %s: bad date %q", path, record[0])
		}
		qty, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("canonical file %s: bad quantity %q", path, record[2])
		}
		out = append(out, internal.SalesRecord{Date: date, Product: record[1], Quantity: qty})
	}
	return out, nil
}

// Monthly sums one product's records per calendar month and fills every
// month between the first and last observation with an explicit zero, so the
// forecaster never sees silent gaps.
func Monthly(records []internal.SalesRecord, product string) []internal.MonthPoint {
	byMonth := map[time.Time]float64{}
	for _, r := range records {
		if r.Product != product {
			continue
		}
		month := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] += r.Quantity
	}
	if len(byMonth) == 0 {
		return nil
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	first, last := months[0], months[len(months)-1]
	out := []internal.MonthPoint{}
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, internal.MonthPoint{Month: m, Quantity: byMonth[m]})
	}
	return out
}

// Products returns the sorted distinct product names in the series.
func Products(records []internal.SalesRecord) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range records {
		if _, ok := seen[r.Product]; ok {
			continue
		}
		seen[r.Product] = struct{}{}
		out = append(out, r.Product)
	}
	sort.Strings(out)
	return out
}
