package style

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/svgtext/core"
	"golang.org/x/image/colornames"
)

// Property is the string value of a CSS property.
type Property string

// IsEmpty is true for unset properties.
func (p Property) IsEmpty() bool {
	return strings.TrimSpace(string(p)) == ""
}

func (p Property) String() string {
	return strings.TrimSpace(string(p))
}

// Properties maps CSS property names to values.
type Properties map[string]Property

// Get returns the value of a property, or "" if unset.
func (p Properties) Get(key string) Property {
	if p == nil {
		return ""
	}
	return p[key]
}

// Set sets a property. Setting an empty value removes the property.
func (p Properties) Set(key string, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(p, key)
		return
	}
	p[key] = Property(value)
}

// ParseDeclarations parses a CSS declaration block, as found in an SVG
// style attribute.
func ParseDeclarations(block string) (Properties, error) {
	if block = strings.TrimSpace(block); block != "" && !strings.HasSuffix(block, ";") {
		block += ";"
	}
	decls, err := parser.ParseDeclarations(block)
	if err != nil {
		return nil, core.WrapError(err, core.ESYNTAX, "malformed style declarations %q", block)
	}
	props := make(Properties, len(decls))
	for _, d := range decls {
		props.Set(strings.ToLower(d.Property), d.Value)
	}
	return props, nil
}

// inherited are the properties of text which children inherit.
var inherited = map[string]bool{
	"font-family": true, "font-size": true, "font-weight": true, "font-style": true,
	"font-stretch": true, "font-variant": true, "letter-spacing": true, "word-spacing": true,
	"text-anchor": true, "direction": true, "writing-mode": true, "kerning": true,
	"font-kerning": true, "glyph-orientation-vertical": true, "glyph-orientation-horizontal": true,
	"fill": true, "stroke": true, "stroke-width": true, "lang": true,
}

// IsInherited is true for properties which are inherited by default.
func IsInherited(key string) bool {
	return inherited[key]
}

// Inherit returns the properties of a child element: inherited properties of
// parent overwritten by the child's own. Values of "inherit" select the
// parent value for any property. text-decoration is propagated to children,
// as decorations span descendants.
func (p Properties) Inherit(parent Properties) Properties {
	props := make(Properties, len(p)+len(parent))
	for k, v := range parent {
		if inherited[k] || k == "text-decoration" {
			props[k] = v
		}
	}
	for k, v := range p {
		if v.String() == "inherit" {
			if pv, ok := parent[k]; ok {
				props[k] = pv
			}
			continue
		}
		props[k] = v
	}
	return props
}

// --- Paint -----------------------------------------------------------------

// Paint is a fill or stroke paint. Only plain colors are supported.
type Paint struct {
	Color color.RGBA
	Set   bool // false for paint "none"
}

// NoPaint is the paint "none".
var NoPaint = Paint{}

// Black is the initial fill paint.
var Black = Paint{Color: color.RGBA{A: 0xff}, Set: true}

// Paint interprets a property as paint: "none", a color name, "#rgb",
// "#rrggbb" or "rgb(r,g,b)". URLs of paint servers fall back to the color
// given after them, if any, else to black.
func (p Property) Paint() Paint {
	s := strings.ToLower(p.String())
	if strings.HasPrefix(s, "url(") {
		if i := strings.Index(s, ")"); i > 0 && strings.TrimSpace(s[i+1:]) != "" {
			return Property(s[i+1:]).Paint()
		}
		return Black
	}
	if s == "none" || s == "" || s == "transparent" {
		return NoPaint
	}
	if c, ok := parseColor(s); ok {
		return Paint{Color: c, Set: true}
	}
	tracer().Infof("cannot interpret color %q, using black", s)
	return Black
}

// Color interprets a property as a color.
func (p Property) Color() color.Color {
	if c, ok := parseColor(strings.ToLower(p.String())); ok {
		return c
	}
	return color.Black
}

func parseColor(s string) (color.RGBA, bool) {
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, false
		}
		var rgb [3]uint8
		for i, part := range parts {
			part = strings.TrimSpace(part)
			percent := strings.HasSuffix(part, "%")
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
			if err != nil || math.IsNaN(v) {
				return color.RGBA{}, false
			}
			if percent {
				v = v * 255 / 100
			}
			rgb[i] = uint8(math.Round(min(255, max(0, v))))
		}
		return color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}, true
	}
	return color.RGBA{}, false
}

func parseHexColor(h string) (color.RGBA, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 0xff}, true
}
