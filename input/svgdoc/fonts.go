package svgdoc

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/svgtext/core/font/svgfont"
	"golang.org/x/net/html"
)

func (doc *Document) readFonts() {
	for _, n := range fontSelector.MatchAll(doc.Root) {
		if n.Namespace != "svg" {
			continue // HTML <font>
		}
		doc.Fonts.Add(readFont(n))
	}
}

// readFont creates an SVG font from a <font> element. Malformed glyphs are
// kept without outline.
func readFont(n *html.Node) *svgfont.Font {
	var face svgfont.FontFace
	if ff := cascadia.Query(n, element("font-face")); ff != nil {
		face = readFace(ff)
	}
	f := svgfont.New(attr(n, "id"), face, number(n, "horiz-adv-x", 0), number(n, "vert-adv-y", 0))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		var err error
		switch strings.ToLower(c.Data) {
		case "glyph":
			_, err = f.AddGlyph(readGlyph(c))
		case "missing-glyph":
			err = f.SetMissingGlyph(readGlyph(c))
		case "hkern", "vkern":
			f.AddKerning(svgfont.Kerning{
				U1: attr(c, "u1"), G1: attr(c, "g1"),
				U2: attr(c, "u2"), G2: attr(c, "g2"),
				K: number(c, "k", 0),
			}, strings.EqualFold(c.Data, "vkern"))
		}
		if err != nil {
			tracer().Infof("font %q: %v", face.Family, err)
		}
	}
	tracer().Debugf("SVG font %q with %d glyphs", face.Family, f.GlyphCount())
	return f
}

func readFace(n *html.Node) svgfont.FontFace {
	return svgfont.FontFace{
		Family:                 strings.Trim(strings.TrimSpace(attr(n, "font-family")), `"'`),
		Style:                  attr(n, "font-style"),
		Weight:                 attr(n, "font-weight"),
		Stretch:                attr(n, "font-stretch"),
		Variant:                attr(n, "font-variant"),
		UnitsPerEm:             number(n, "units-per-em", 1000),
		Ascent:                 number(n, "ascent", 0),
		Descent:                number(n, "descent", 0),
		XHeight:                number(n, "x-height", 0),
		UnderlinePosition:      number(n, "underline-position", 0),
		UnderlineThickness:     number(n, "underline-thickness", 0),
		StrikethroughPosition:  number(n, "strikethrough-position", 0),
		StrikethroughThickness: number(n, "strikethrough-thickness", 0),
	}
}

func readGlyph(n *html.Node) svgfont.Glyph {
	return svgfont.Glyph{
		Unicode:   attr(n, "unicode"),
		Name:      attr(n, "glyph-name"),
		HorizAdvX: number(n, "horiz-adv-x", -1),
		VertAdvY:  number(n, "vert-adv-y", -1),
		D:         attr(n, "d"),
	}
}

// number reads a numeric attribute. Absent or malformed values yield def.
func number(n *html.Node, key string, def float64) float64 {
	s := strings.TrimSpace(attr(n, key))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		tracer().Infof("<%s %s=%q>: not a number", n.Data, key, s)
		return def
	}
	return v
}
