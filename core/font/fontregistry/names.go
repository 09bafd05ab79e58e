package fontregistry

import (
	"strings"
	"unicode"
)

// NormalizeFamily normalizes a font family name for lookup: quotes and
// surrounding space are removed, inner white space is collapsed and the
// name is lower-cased.
func NormalizeFamily(name string) string {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// HyphenToSpace replaces hyphens and underscores by spaces,
// e.g. "Noto-Sans" → "Noto Sans".
func HyphenToSpace(name string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}

// SplitCamelCase inserts spaces at case changes,
// e.g. "TimesNewRomanPSMT" → "Times New Roman PSMT". Runs of capitals stay
// together, except for the last capital of a run followed by a lower case
// letter ("PSFont" → "PS Font").
func SplitCamelCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && runes[i-1] != ' ' {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// postScriptSuffixes are stripped from family names; longest first.
var postScriptSuffixes = []string{"PSMT", "MT", "PS"}

// StripPostScriptSuffix removes trailing "PSMT", "MT" or "PS" designators
// from a font name.
func StripPostScriptSuffix(name string) string {
	name = strings.TrimSpace(name)
	for _, sfx := range postScriptSuffixes {
		if strings.HasSuffix(name, sfx) && len(name) > len(sfx) {
			return strings.TrimSpace(name[:len(name)-len(sfx)])
		}
	}
	return name
}

// Generic returns the canonical generic family for a name, if it names one.
// Cursive, fantasy and system-ui map to sans-serif.
func Generic(name string) (string, bool) {
	switch NormalizeFamily(name) {
	case "serif":
		return "serif", true
	case "sans-serif", "cursive", "fantasy", "system-ui":
		return "sans-serif", true
	case "monospace":
		return "monospace", true
	}
	return "", false
}

// ParseFamilyList splits a CSS font-family value into a chain of names.
func ParseFamilyList(value string) []string {
	var chain []string
	for _, f := range strings.Split(value, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			chain = append(chain, f)
		}
	}
	return chain
}

// nameVariants lists the spellings of a family name to try against the
// registry, in order: as given, with hyphens as spaces, split at case changes
// with PostScript suffixes stripped.
func nameVariants(name string) []string {
	name = strings.TrimSpace(name)
	variants := []string{name}
	add := func(v string) {
		v = strings.Join(strings.Fields(v), " ")
		for _, w := range variants {
			if strings.EqualFold(v, w) {
				return
			}
		}
		if v != "" {
			variants = append(variants, v)
		}
	}
	add(HyphenToSpace(name))
	add(StripPostScriptSuffix(SplitCamelCase(HyphenToSpace(name))))
	return variants
}
