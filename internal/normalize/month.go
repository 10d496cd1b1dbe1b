package normalize

import (
	"strconv"
	"strings"
)

// Months are the BibTeX month macros.
var Months = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// MonthRangeSeparator joins the months of a range such as "March-April" into
// a BibTeX concatenation expression.
const MonthRangeSeparator = ` # "-" # `

// TranslateMonth unifies month values. A number 1-12 or a month name (or any
// word whose first three letters name a month) becomes the month macro;
// ranges "June-July" become `jun # "-" # jul`. The result is a bare BibTeX
// expression, not a delimited string. ok is false for unrecognized values,
// which are logged.
func TranslateMonth(raw string) (string, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 && n <= 12 {
		return Months[n-1], true
	}

	pieces := strings.Split(raw, "-")
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		month := strings.ToLower(firstRunes(strings.TrimSpace(piece), 3))
		if !isMonth(month) {
			// Values like "????" appear in real databases.
			logger().Warn("unknown month value, skipping", "value", raw)
			return "", false
		}
		out = append(out, month)
	}
	return strings.Join(out, MonthRangeSeparator), true
}

func isMonth(s string) bool {
	for _, m := range Months {
		if s == m {
			return true
		}
	}
	return false
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
