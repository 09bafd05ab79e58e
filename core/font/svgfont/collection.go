package svgfont

import "strings"

// Collection holds the fonts defined in a document, in document order.
// More than one font may share a family name.
type Collection struct {
	fonts []*Font
}

// NewCollection creates a collection from a list of fonts.
func NewCollection(fonts ...*Font) *Collection {
	c := &Collection{}
	for _, f := range fonts {
		c.Add(f)
	}
	return c
}

// Add appends a font to the collection. Fonts without a family are ignored.
func (c *Collection) Add(f *Font) {
	if f == nil || strings.TrimSpace(f.Face.Family) == "" {
		tracer().Infof("ignoring SVG font without font-family")
		return
	}
	c.fonts = append(c.fonts, f)
}

// Lookup returns all fonts of a family, in document order. Family names
// are compared case-insensitively.
func (c *Collection) Lookup(family string) []*Font {
	if c == nil {
		return nil
	}
	var fonts []*Font
	for _, f := range c.fonts {
		if strings.EqualFold(strings.TrimSpace(f.Face.Family), strings.TrimSpace(family)) {
			fonts = append(fonts, f)
		}
	}
	return fonts
}

// ByID returns the font with a given element id.
func (c *Collection) ByID(id string) (*Font, bool) {
	if c == nil {
		return nil, false
	}
	for _, f := range c.fonts {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Len returns the number of fonts in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fonts)
}
