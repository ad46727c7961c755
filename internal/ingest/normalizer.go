package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"siprev/internal/config"
)

// RawRecord is one source row before type coercion. Date stays textual in
// DD/MM/YYYY form; the unifier owns parsing so that unparsable dates are
// filtered, not fatal.
type RawRecord struct {
	Date     string
	Product  string
	Quantity string
}

// Normalizer turns one raw sales export of unknown layout into raw records.
type Normalizer struct {
	cfg config.Config
}

func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// NormalizeFile dispatches on extension, resolves the reporting period and
// returns the file's rows. A file yields rows only when both a product and a
// quantity column were identified and a period was resolved; anything else is
// an error the caller records and skips.
func (n *Normalizer) NormalizeFile(path string) ([]RawRecord, error) {
	name := filepath.Base(path)

	var body []bodyRow
	var period string
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		body, period, err = n.readSpreadsheet(path)
	case ".csv":
		body, err = readDelimited(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", name)
	}
	if err != nil {
		return nil, err
	}

	if period == "" {
		period = InferPeriodFromName(name, n.cfg.FallbackYear)
	}
	if period == "" {
		return nil, fmt.Errorf("no period resolved for %s", name)
	}

	out := make([]RawRecord, 0, len(body))
	for _, row := range body {
		out = append(out, RawRecord{Date: period, Product: row.product, Quantity: row.quantity})
	}
	return out, nil
}

// bodyRow is a data row after column identification, still untyped.
type bodyRow struct {
	product  string
	quantity string
}
