package fontregistry

import (
	"regexp"
	"strings"

	"github.com/npillmayer/svgtext/core/font"
)

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// ClosestMatch scans a list of font desriptors and returns the closest match
// for a given set of parametesrs.
// If no variant matches, returns `NoConfidence`.
func ClosestMatch(fdescs []font.Descriptor, pattern string, aspect font.Aspect) (
	match font.Descriptor, variant string, confidence MatchConfidence) {
	//
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		tracer().Errorf("invalid font name pattern")
		return
	}
	for _, fdesc := range fdescs {
		if !r.MatchString(strings.ToLower(fdesc.Family)) {
			continue
		}
		if v, c := BestVariant(fdesc, aspect); c > confidence {
			confidence, variant, match = c, v, fdesc
		}
	}
	return
}

// BestVariant selects the variant of a font family which matches a given
// aspect most closely. The first of equally good variants wins.
func BestVariant(fdesc font.Descriptor, aspect font.Aspect) (variant string, confidence MatchConfidence) {
	aspect = aspect.WithDefaults()
	best := MatchConfidence(-1)
	for _, v := range fdesc.Variants {
		s := MatchStyle(v, aspect.Style)
		w := MatchWeight(v, aspect.Weight)
		if s+w > best {
			best, variant = s+w, v
		}
	}
	if best < 0 {
		return "regular", NoConfidence
	}
	return variant, best / 2
}

// ---------------------------------------------------------------------------

// MatchStyle trys to match a font-variant to a given style.
func MatchStyle(variantName string, style font.Style) MatchConfidence {
	vstyle := font.ParseVariantName(variantName).Style
	switch {
	case vstyle == style:
		return PerfectConfidence
	case style != font.StyleNormal && vstyle != font.StyleNormal:
		return HighConfidence // italic for oblique and vice versa
	}
	return NoConfidence
}

// MatchWeight trys to match a font-variant to a given weight. Confidence
// decreases with the distance of weight classes.
func MatchWeight(variantName string, weight font.Weight) MatchConfidence {
	d := font.ParseVariantName(variantName).Weight - weight
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return PerfectConfidence
	case d <= 100:
		return HighConfidence
	case d <= 200:
		return LowConfidence
	}
	return NoConfidence
}

// --- Disambiguation of candidates ------------------------------------------

// closestCandidate selects among typefaces of the same family. Candidates are
// narrowed in stages: exact style, exact variant, closest weight. A stage
// without an exact match keeps the single closest candidate. Ties prefer
// the earlier candidate.
func closestCandidate(cands []font.Typeface, aspect font.Aspect) int {
	if len(cands) == 0 {
		return -1
	}
	idx := make([]int, len(cands))
	for i := range cands {
		idx[i] = i
	}
	idx = narrow(idx, func(i int) int {
		return styleDistance(cands[i].Aspect().Style, aspect.Style)
	})
	idx = narrow(idx, func(i int) int {
		if cands[i].Aspect().Variant == aspect.Variant {
			return 0
		}
		return 1
	})
	idx = narrow(idx, func(i int) int {
		d := int(cands[i].Aspect().Weight - aspect.WithDefaults().Weight)
		if d < 0 {
			d = -d
		}
		return d
	})
	return idx[0]
}

// narrow keeps all candidates at distance 0 or, if there is none, the
// first candidate with minimal distance.
func narrow(idx []int, dist func(int) int) []int {
	exact := idx[:0:0]
	best, bestd := -1, 0
	for _, i := range idx {
		d := dist(i)
		if d == 0 {
			exact = append(exact, i)
		}
		if best < 0 || d < bestd {
			best, bestd = i, d
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return []int{best}
}

func styleDistance(have, want font.Style) int {
	switch {
	case have == want:
		return 0
	case have != font.StyleNormal && want != font.StyleNormal:
		return 1
	}
	return 2
}
