package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"siprev/internal"
	"siprev/internal/config"
	"siprev/internal/util"
)

var (
	liturgicalPattern = regexp.MustCompile(`LIT.*GICA.*`)

	liturgicalCanonical = "LITÚRGICA C/10"
)

// Unifier runs the normalizer over a directory of raw exports and emits one
// cleaned, date-sorted table of sales records spanning all products.
type Unifier struct {
	cfg        config.Config
	normalizer *Normalizer
	log        *slog.Logger
}

func NewUnifier(cfg config.Config, log *slog.Logger) *Unifier {
	return &Unifier{cfg: cfg, normalizer: NewNormalizer(cfg), log: log}
}

// Unify is idempotent: the same file set and correction tables yield an
// identical series. Per-file failures are logged and skipped, never fatal.
func (u *Unifier) Unify(dir string) ([]internal.SalesRecord, internal.RunStats, error) {
	stats := internal.RunStats{StartedAt: time.Now().UTC()}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stats, fmt.Errorf("read raw data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	raw := []RawRecord{}
	for _, name := range names {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xls", ".csv":
		default:
			continue
		}
		stats.FilesSeen++
		records, err := u.normalizer.NormalizeFile(filepath.Join(dir, name))
		if err != nil {
			stats.FilesSkipped++
			u.log.Warn("skipping file", "file", name, "error", err)
			continue
		}
		stats.FilesParsed++
		raw = append(raw, records...)
	}

	cleaned := u.clean(raw)
	stats.RowsKept = len(cleaned)
	stats.FinishedAt = time.Now().UTC()
	return cleaned, stats, nil
}

type workRow struct {
	date    time.Time
	dateOK  bool
	product string
	qty     float64
	qtyOK   bool
}

// clean applies the unification rules in a fixed order; later rules assume
// earlier normalization (the scoped correction matches the upper-cased
// marker against coerced dates).
func (u *Unifier) clean(raw []RawRecord) []internal.SalesRecord {
	rows := make([]workRow, 0, len(raw))
	for _, r := range raw {
		row := workRow{}
		row.qty, row.qtyOK = util.ParseQuantity(r.Quantity)
		row.product = util.NormalizeProduct(r.Product)
		if parsed, err := time.ParseInLocation("02/01/2006", r.Date, time.UTC); err == nil {
			// Day-of-month is discarded: the series is period-grained.
			row.date = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
			row.dateOK = true
		}
		rows = append(rows, row)
	}

	corr := u.cfg.Correction
	for i := range rows {
		row := &rows[i]
		if !row.dateOK || !row.qtyOK {
			continue
		}
		if strings.Contains(row.product, corr.Marker) && !row.date.Before(corr.From) && !row.date.After(corr.To) {
			row.qty /= corr.Divisor
		}
	}

	for i := range rows {
		rows[i].product = normalizeName(rows[i].product)
	}

	out := make([]internal.SalesRecord, 0, len(rows))
	for _, row := range rows {
		if !row.dateOK || !row.qtyOK || row.product == "" || row.qty <= 0 {
			continue
		}
		out = append(out, internal.SalesRecord{Date: row.date, Product: row.product, Quantity: row.qty})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// normalizeName collapses the known legacy spellings to current product
// names: prefix strip, liturgical-candle variants, one renamed size code,
// then the direct substitution table.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "ALTAR ", "")
	name = liturgicalPattern.ReplaceAllString(name, liturgicalCanonical)
	name = strings.ReplaceAll(name, "VOTIVA 15CM", "15X5")
	if replacement, ok := productSubstitutions[name]; ok {
		name = replacement
	}
	return name
}
