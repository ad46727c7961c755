package ingest

// Header variants observed across the raw exports. Spreadsheet headers are
// upper-cased before lookup, delimited-text headers lower-cased.
var spreadsheetHeaderMap = map[string]column{
	"PRODUTO":    columnProduct,
	"QUANTIDADE": columnQuantity,
}

var delimitedHeaderMap = map[string]column{
	"nome":             columnProduct,
	"desc_item":        columnProduct,
	"produto":          columnProduct,
	"numero de vendas": columnQuantity,
	"qtde":             columnQuantity,
	"quantidade":       columnQuantity,
}

type column int

const (
	columnProduct column = iota
	columnQuantity
)

type monthName struct {
	Name  string
	Month int
}

// Scanned in order; the first name contained in the filename wins.
var monthNames = []monthName{
	{"janeiro", 1}, {"fevereiro", 2}, {"março", 3}, {"marco", 3},
	{"abril", 4}, {"maio", 5}, {"junho", 6},
	{"julho", 7}, {"agosto", 8}, {"setembro", 9},
	{"outubro", 10}, {"novembro", 11}, {"dezembro", 12},
}

// Direct substitutions for legacy product names, applied to the whole value.
var productSubstitutions = map[string]string{
	"VELA VOTIVA 7D":   "VOTIVA 7 DIAS",
	"MACO VELA PALITO": "VELA PALITO",
}
