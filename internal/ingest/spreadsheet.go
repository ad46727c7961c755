package ingest

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

const (
	// Row (0-based) of the header block cell that carries the period string.
	periodCellRow = 8
	// Row (0-based) where the column headers sit; data follows.
	headerRowOffset = 10
)

var periodPattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

// readSpreadsheet reads an xlsx workbook: the period string from a fixed cell
// in the header block, then the data body from the fixed header offset.
// Legacy .xls exports from the POS are HTML tables under an .xls name, which
// excelize cannot open; those fall through to the HTML-table reader and rely
// on filename period inference.
func (n *Normalizer) readSpreadsheet(path string) ([]bodyRow, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		rows, htmlErr := readHTMLTable(path)
		if htmlErr != nil {
			return nil, "", fmt.Errorf("open workbook %s: %w", path, err)
		}
		return rows, "", nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, "", err
	}

	period := ""
	if len(rows) > periodCellRow && len(rows[periodCellRow]) > 0 {
		if m := periodPattern.FindString(rows[periodCellRow][0]); m != "" {
			period = m
		}
	}

	if len(rows) <= headerRowOffset {
		return nil, "", fmt.Errorf("workbook %s has no data body", path)
	}

	productIdx, quantityIdx := -1, -1
	for i, h := range rows[headerRowOffset] {
		col, known := spreadsheetHeaderMap[strings.ToUpper(strings.TrimSpace(h))]
		if !known {
			continue
		}
		if col == columnProduct && productIdx < 0 {
			productIdx = i
		}
		if col == columnQuantity && quantityIdx < 0 {
			quantityIdx = i
		}
	}
	if productIdx < 0 || quantityIdx < 0 {
		return nil, "", fmt.Errorf("product/quantity columns not found in %s", path)
	}

	out := []bodyRow{}
	for _, row := range rows[headerRowOffset+1:] {
		if productIdx >= len(row) || quantityIdx >= len(row) {
			continue
		}
		out = append(out, bodyRow{product: row[productIdx], quantity: row[quantityIdx]})
	}
	return out, period, nil
}

// readHTMLTable parses a table-bearing HTML document, identifying columns by
// the same lower-cased header variants as the delimited path.
func readHTMLTable(path string) ([]bodyRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}

	var out []bodyRow
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		productIdx, quantityIdx := -1, -1
		rows.First().Find("th,td").Each(func(i int, cell *goquery.Selection) {
			col, known := delimitedHeaderMap[strings.ToLower(strings.TrimSpace(cell.Text()))]
			if !known {
				return
			}
			if col == columnProduct && productIdx < 0 {
				productIdx = i
			}
			if col == columnQuantity && quantityIdx < 0 {
				quantityIdx = i
			}
		})
		if productIdx < 0 || quantityIdx < 0 {
			return true
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if productIdx >= len(cells) || quantityIdx >= len(cells) {
				return
			}
			out = append(out, bodyRow{product: cells[productIdx], quantity: cells[quantityIdx]})
		})
		return false
	})

	if out == nil {
		return nil, fmt.Errorf("no usable table in %s", path)
	}
	return out, nil
}
