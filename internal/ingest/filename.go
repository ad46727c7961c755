package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`(202[3-9])|[-_.](\d{2})[-_.]`)

// InferPeriodFromName resolves a file's reporting period from its name when
// the file itself carries no period cell. The month comes from a Portuguese
// month-name scan; the year from a 4-digit 202x token, a separator-bounded
// 2-digit token, two legacy substring overrides, or the configured fallback.
// Returns "" when no month name is present: such a file contributes nothing.
func InferPeriodFromName(fileName string, fallbackYear int) string {
	lower := strings.ToLower(fileName)

	month := 0
	for _, m := range monthNames {
		if strings.Contains(lower, m.Name) {
			month = m.Month
			break
		}
	}
	if month == 0 {
		return ""
	}

	year := fmt.Sprintf("%d", fallbackYear)
	if m := yearPattern.FindStringSubmatch(fileName); m != nil {
		v := m[1]
		if v == "" {
			v = m[2]
		}
		if len(v) == 4 {
			year = v
		} else {
			year = "20" + v
		}
	} else if strings.Contains(fileName, "25") {
		year = "2025"
	} else if strings.Contains(fileName, "23") {
		year = "2023"
	}

	return fmt.Sprintf("01/%02d/%s", month, year)
}
