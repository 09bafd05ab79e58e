package glyphing

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
)

// BuildIndices creates a run of glyphs from text and an explicit glyph
// specification. indices is a list of entries separated by ';', each of
// the form
//
//	[(chars[:glyphs])][gid][,[advance][,[dx][,[dy]]]]
//
// The optional prefix declares a cluster of chars characters represented by
// glyphs glyphs; the glyphs of a cluster are the following entries. An empty
// gid selects the glyph of the cluster's first character. Advances and
// offsets are given in hundredths of an em; empty values select the
// typeface's advance and zero offsets. Characters not covered by indices
// are mapped 1:1.
//
// Malformed entries are errors with code core.ESYNTAX.
func BuildIndices(tf font.Typeface, text string, indices string, emSize float64, sideways bool,
	opts ...BuildOption) (*GlyphRunSpec, error) {
	//
	run, cfg, err := newRun(tf, text, emSize, sideways, opts)
	if err != nil {
		return nil, err
	}
	p := indicesParser{run: run, mapped: make([]bool, len(run.Chars))}
	if err := p.parse(indices); err != nil {
		tracer().Infof("glyph indices %q: %v", indices, err)
		return nil, err
	}
	for i := p.char; i < len(run.Chars); i++ {
		gid, _ := tf.GlyphIndex(run.Chars[i])
		if err := p.setCluster(i, 1, gid, -1); err != nil {
			return nil, err
		}
	}
	if cfg.kerning {
		run.applyKerning()
	}
	return run, nil
}

type indicesParser struct {
	run    *GlyphRunSpec
	mapped []bool // characters already in the cluster map
	char   int    // next character to map
}

func (p *indicesParser) parse(indices string) error {
	if strings.TrimSpace(indices) == "" {
		return nil
	}
	entries := strings.Split(indices, ";")
	if strings.TrimSpace(entries[len(entries)-1]) == "" {
		entries = entries[:len(entries)-1] // trailing separator
	}
	for e := 0; e < len(entries); {
		entry := strings.TrimSpace(entries[e])
		nchars, nglyphs, rest, err := parseClusterPrefix(entry)
		if err != nil {
			return err
		}
		if p.char+nchars > len(p.run.Chars) {
			return core.Error(core.ESYNTAX, "glyph cluster at entry %d exceeds text", e+1)
		}
		if e+nglyphs > len(entries) {
			return core.Error(core.ESYNTAX, "glyph cluster at entry %d expects %d glyphs, has %d",
				e+1, nglyphs, len(entries)-e)
		}
		for k := 0; k < nglyphs; k++ {
			if k > 0 {
				rest = strings.TrimSpace(entries[e+k])
				if strings.HasPrefix(rest, "(") {
					return core.Error(core.ESYNTAX, "glyph cluster at entry %d interrupted by entry %d",
						e+1, e+k+1)
				}
			}
			if err := p.glyph(rest, nchars, k == 0); err != nil {
				return core.WrapError(err, core.ESYNTAX, "glyph entry %d: %q", e+k+1, entries[e+k])
			}
		}
		p.char += nchars
		e += nglyphs
	}
	return nil
}

// parseClusterPrefix splits "(c:g)rest" into its parts. Without a prefix,
// a cluster is 1 character and 1 glyph.
func parseClusterPrefix(entry string) (nchars, nglyphs int, rest string, err error) {
	nchars, nglyphs, rest = 1, 1, entry
	if !strings.HasPrefix(entry, "(") {
		if strings.ContainsAny(entry, "()") {
			return 0, 0, "", core.Error(core.ESYNTAX, "misplaced parenthesis in glyph entry %q", entry)
		}
		return
	}
	rparen := strings.Index(entry, ")")
	if rparen < 0 {
		return 0, 0, "", core.Error(core.ESYNTAX, "missing ')' in glyph entry %q", entry)
	}
	rest = strings.TrimSpace(entry[rparen+1:])
	cg := strings.SplitN(entry[1:rparen], ":", 2)
	if nchars, err = parseCount(cg[0]); err != nil {
		return 0, 0, "", err
	}
	if len(cg) == 2 {
		if nglyphs, err = parseCount(cg[1]); err != nil {
			return 0, 0, "", err
		}
	}
	return nchars, nglyphs, rest, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, core.Error(core.ESYNTAX, "invalid cluster size %q", s)
	}
	return n, nil
}

// glyph parses "[gid][,[advance][,[dx][,[dy]]]]" for a cluster of nchars
// characters starting at p.char.
func (p *indicesParser) glyph(entry string, nchars int, first bool) error {
	fields := strings.Split(entry, ",")
	if len(fields) > 4 {
		return core.Error(core.ESYNTAX, "too many fields")
	}
	for len(fields) < 4 {
		fields = append(fields, "")
	}
	var gid font.GlyphIndex
	if s := strings.TrimSpace(fields[0]); s == "" {
		gid, _ = p.run.Typeface.GlyphIndex(p.run.Chars[p.char])
	} else {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return core.WrapError(err, core.ESYNTAX, "malformed glyph index %q", s)
		}
		if n > math.MaxUint16 {
			return core.Error(core.ESYNTAX, "glyph index %d out of range", n)
		}
		gid = font.GlyphIndex(n)
	}
	scale := p.run.EmSize / 100
	values := [3]float64{-1, 0, 0}
	for i, f := range fields[1:] {
		s := strings.TrimSpace(f)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Error(core.ESYNTAX, "malformed number %q", s)
		}
		values[i] = v * scale
	}
	if values[0] < 0 && strings.TrimSpace(fields[1]) != "" {
		values[0] = 0 // negative advances are not allowed
	}
	if first {
		if err := p.setCluster(p.char, nchars, gid, values[0]); err != nil {
			return err
		}
	} else if _, err := p.run.addGlyph(gid, p.advance(gid, values[0])); err != nil {
		return err
	}
	p.run.setOffset(len(p.run.Glyphs)-1, values[1], values[2])
	return nil
}

func (p *indicesParser) advance(gid font.GlyphIndex, adv float64) float64 {
	if adv < 0 {
		return p.run.Typeface.Advance(gid, p.run.Sideways) * p.run.EmSize / 100
	}
	return adv
}

// setCluster maps n characters to a new glyph. Every character may be
// mapped only once.
func (p *indicesParser) setCluster(char, n int, gid font.GlyphIndex, advance float64) error {
	for k := char; k < char+n; k++ {
		if p.mapped[k] {
			return core.Error(core.ESYNTAX, "cluster map collision at character %d", k)
		}
		p.mapped[k] = true
	}
	return p.run.mapCluster(char, n, gid, advance)
}
