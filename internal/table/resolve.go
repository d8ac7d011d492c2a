package table

import "strings"

// Resolve finds the actual column backing a logical field. Keywords are
// scanned in priority order; within a keyword, columns are scanned in their
// original order and the first whose lowercased, trimmed name contains the
// keyword as a substring wins. The first keyword with any match settles the
// result, so a high-priority keyword always beats a better-looking match on a
// lower-priority one.
func Resolve(columns []string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, col := range columns {
			if strings.Contains(strings.ToLower(strings.TrimSpace(col)), kw) {
				return col, true
			}
		}
	}
	return "", false
}
