package svgfont

import (
	"strconv"
	"strings"
)

func splitList(list string) []string {
	var entries []string
	for _, e := range strings.Split(list, ",") {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// parseUnicodeRange parses "U+0041", "U+0041-005A" or a wildcard range
// like "U+00??".
func parseUnicodeRange(s string) (from, to rune, ok bool) {
	if len(s) < 3 || !strings.EqualFold(s[:2], "U+") {
		return 0, 0, false
	}
	s = s[2:]
	if strings.Contains(s, "?") {
		lo, err1 := strconv.ParseUint(strings.ReplaceAll(s, "?", "0"), 16, 32)
		hi, err2 := strconv.ParseUint(strings.ReplaceAll(s, "?", "F"), 16, 32)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return rune(lo), rune(hi), true
	}
	lohi := strings.SplitN(s, "-", 2)
	lo, err := strconv.ParseUint(lohi[0], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	hi := lo
	if len(lohi) == 2 {
		if hi, err = strconv.ParseUint(lohi[1], 16, 32); err != nil || hi < lo {
			return 0, 0, false
		}
	}
	return rune(lo), rune(hi), true
}
