package series

import "siprev/internal"

// CSVSource reads the canonical series file on every load. It backs the
// planner when no sqlite store is in play.
type CSVSource struct {
	Path string
}

func (s CSVSource) LoadSales() ([]internal.SalesRecord, error) {
	return LoadCSV(s.Path)
}
