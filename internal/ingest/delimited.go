package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var delimiterCandidates = []rune{';', ',', '\t'}

type encodingCandidate struct {
	name    string
	decoder func() *encoding.Decoder
}

var encodingCandidates = []encodingCandidate{
	{"latin1", func() *encoding.Decoder { return charmap.ISO8859_1.NewDecoder() }},
	{"utf-8", nil},
	{"utf-16", func() *encoding.Decoder {
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}},
}

// readDelimited probes delimiter x encoding combinations in a fixed order and
// accepts the first one that parses into more than one column of clean text.
// Column identification runs after acceptance, on the lower-cased header
// variants; a parseable file without both columns is still an error.
func readDelimited(path string) ([]bodyRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var header []string
	var records [][]string
	accepted := false
	for _, sep := range delimiterCandidates {
		for _, enc := range encodingCandidates {
			h, recs, ok := tryParse(raw, sep, enc)
			if ok {
				header, records, accepted = h, recs, true
				break
			}
		}
		if accepted {
			break
		}
	}
	if !accepted {
		return nil, fmt.Errorf("no delimiter/encoding combination parsed %s", path)
	}

	productIdx, quantityIdx := -1, -1
	for i, h := range header {
		col, known := delimitedHeaderMap[strings.ToLower(strings.TrimSpace(h))]
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
		return nil, fmt.Errorf("product/quantity columns not found in %s", path)
	}

	out := make([]bodyRow, 0, len(records))
	for _, record := range records {
		if productIdx >= len(record) || quantityIdx >= len(record) {
			continue
		}
		out = append(out, bodyRow{product: record[productIdx], quantity: record[quantityIdx]})
	}
	return out, nil
}

func tryParse(raw []byte, sep rune, enc encodingCandidate) ([]string, [][]string, bool) {
	decoded := raw
	if enc.decoder != nil {
		out, _, err := transform.Bytes(enc.decoder(), raw)
		if err != nil {
			return nil, nil, false
		}
		decoded = out
	}
	if !utf8.Valid(decoded) || bytes.ContainsRune(decoded, 0) {
		return nil, nil, false
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil || len(header) < 2 {
		return nil, nil, false
	}

	records := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, false
		}
		records = append(records, record)
	}
	return header, records, true
}
