package svgdoc

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/gogpu/gg"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/core/font/svgfont"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
	"golang.org/x/net/html"
)

// Document holds the text of an SVG document and the resources it needs.
type Document struct {
	Root          *html.Node
	Width, Height float64 // of the viewport; 0 if unknown
	Texts         []*TextNode
	Paths         map[string]*gg.Path // paths with an id
	Fonts         *svgfont.Collection
}

// TextNode is a <text> element.
type TextNode struct {
	Element     *html.Node
	Props       style.Properties // own and inherited properties
	FontSize    float64
	StartOffset dimen.Length // start offset for text on a path
	Spans       []*Span
}

// Text returns the characters of a text element, with white space
// normalized.
func (t *TextNode) Text() string {
	var b strings.Builder
	for _, sp := range t.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Span is a piece of text with uniform properties, or an image.
type Span struct {
	Text     string
	Element  *html.Node // innermost element containing the text
	Props    style.Properties
	FontSize float64
	Position placement.LengthAttributes // positioning lists for the span's characters
	Path     *PathRef                   // set for text on a path
	Image    *html.Node                 // set for <image> elements; Text is empty
}

// PathRef is a <textPath> element and the path it references.
type PathRef struct {
	Element     *html.Node
	ID          string
	Path        *gg.Path // nil if the reference cannot be resolved
	StartOffset dimen.Length
	TextLength  dimen.Length
}

var (
	textSelector = cascadia.MustCompile("text")
	pathSelector = cascadia.MustCompile("path[id]")
	fontSelector = cascadia.MustCompile("font")
)

// element matches elements by name, ignoring case. The HTML parser
// camel-cases SVG element names like textPath, which lowercase cascadia
// type selectors do not match.
type element string

func (e element) Match(n *html.Node) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, string(e))
}

var _ cascadia.Matcher = element("")

// Parse reads an SVG document, either stand-alone or inline in HTML.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.ESYNTAX, "cannot parse SVG document")
	}
	doc := &Document{
		Root:  root,
		Paths: make(map[string]*gg.Path),
		Fonts: svgfont.NewCollection(),
	}
	if svg := cascadia.Query(root, element("svg")); svg != nil {
		doc.Width, doc.Height = viewport(svg)
	}
	doc.readPaths()
	doc.readFonts()
	for _, n := range textSelector.MatchAll(root) {
		if n.Namespace != "svg" {
			continue
		}
		doc.Texts = append(doc.Texts, doc.readText(n))
	}
	tracer().Infof("SVG document: %d text elements, %d paths, %d fonts",
		len(doc.Texts), len(doc.Paths), doc.Fonts.Len())
	return doc, nil
}

// viewport reads the size of the outermost svg element, from its width and
// height or from its viewBox.
func viewport(svg *html.Node) (w, h float64) {
	if vb, err := dimen.ParseNumberList(attr(svg, "viewBox")); err == nil && len(vb) == 4 {
		w, h = vb[2], vb[3]
	}
	if l, err := dimen.ParseLength(attr(svg, "width")); err == nil && !l.IsPercentage() {
		w = l.Resolve(dimen.Context{FontSize: style.DefaultFontSize})
	}
	if l, err := dimen.ParseLength(attr(svg, "height")); err == nil && !l.IsPercentage() {
		h = l.Resolve(dimen.Context{FontSize: style.DefaultFontSize})
	}
	return
}

func (doc *Document) readPaths() {
	for _, n := range pathSelector.MatchAll(doc.Root) {
		id := attr(n, "id")
		if _, dup := doc.Paths[id]; dup {
			tracer().Infof("duplicate path id %q", id)
			continue
		}
		p, err := gg.ParseSVGPath(attr(n, "d"))
		if err != nil {
			tracer().Infof("path %q: %v", id, err)
			continue
		}
		doc.Paths[id] = p
	}
}

// attr returns the value of an attribute, ignoring its namespace and the
// case of its name.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// --- Properties ------------------------------------------------------------

// properties collects the properties of an element from the chain of its
// ancestors.
func properties(n *html.Node) (style.Properties, float64) {
	var chain []*html.Node
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			chain = append(chain, p)
		}
	}
	props, size := style.Properties{}, float64(style.DefaultFontSize)
	for i := len(chain) - 1; i >= 0; i-- {
		props, size = elementProperties(chain[i], props, size)
	}
	return props, size
}

// elementProperties computes the properties of an element from its
// presentation attributes, its style attribute and the properties of its
// parent. The font size is made absolute, so that children inherit the
// computed value.
func elementProperties(n *html.Node, parent style.Properties, parentSize float64) (style.Properties, float64) {
	own := style.Properties{}
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if style.IsInherited(key) || key == "text-decoration" || key == "glyph-indices" {
			own.Set(key, a.Val)
		}
	}
	if block := attr(n, "style"); block != "" {
		decls, err := style.ParseDeclarations(block)
		if err != nil {
			tracer().Infof("<%s>: %v", n.Data, err)
		}
		for k, v := range decls {
			own[k] = v
		}
	}
	props := own.Inherit(parent)
	size := props.FontSize(parentSize)
	props.Set("font-size", strconv.FormatFloat(size, 'g', -1, 64))
	return props, size
}

// --- Text ------------------------------------------------------------------

func (doc *Document) readText(n *html.Node) *TextNode {
	props, size := properties(n)
	t := &TextNode{Element: n, Props: props, FontSize: size}
	if s := attr(n, "startOffset"); s != "" {
		t.StartOffset = parseLength(n, "startOffset", s)
	}
	w := &textWalker{
		doc:       doc,
		node:      t,
		preserve:  attr(n, "space") == "preserve",
		lastSpace: true,
	}
	w.walk(n, props, size)
	w.trimEnd()
	tracer().Debugf("text %q in %d spans", t.Text(), len(t.Spans))
	return t
}

// positioned is an element with positioning lists and the number of its
// characters seen so far.
type positioned struct {
	attrs  placement.LengthAttributes
	offset int
}

type textWalker struct {
	doc       *Document
	node      *TextNode
	positions []*positioned // stack of ancestors with positioning lists
	path      *PathRef
	preserve  bool // xml:space="preserve"
	lastSpace bool
}

func (w *textWalker) walk(n *html.Node, props style.Properties, size float64) {
	if pos := positionOf(n); pos != nil {
		w.positions = append(w.positions, pos)
		defer func() { w.positions = w.positions[:len(w.positions)-1] }()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			w.addText(c.Data, n, props, size)
		case html.ElementNode:
			switch strings.ToLower(c.Data) {
			case "tspan", "a":
				cprops, csize := elementProperties(c, props, size)
				w.walk(c, cprops, csize)
			case "textpath":
				if w.path != nil {
					tracer().Infof("ignoring nested textPath")
					continue
				}
				cprops, csize := elementProperties(c, props, size)
				w.path = w.doc.pathRef(c)
				w.walk(c, cprops, csize)
				w.path = nil
			case "image":
				w.node.Spans = append(w.node.Spans, &Span{
					Element: c, Image: c, Props: props, FontSize: size, Path: w.path,
				})
			}
		}
	}
}

func positionOf(n *html.Node) *positioned {
	la, err := placement.ParseAttributes(attr(n, "x"), attr(n, "y"), attr(n, "dx"), attr(n, "dy"),
		attr(n, "rotate"))
	if err != nil {
		tracer().Infof("<%s>: %v", n.Data, err)
		return nil
	}
	if la.IsEmpty() {
		return nil
	}
	return &positioned{attrs: la}
}

func (w *textWalker) addText(s string, elem *html.Node, props style.Properties, size float64) {
	text := w.normalize(s)
	if text == "" {
		return
	}
	w.node.Spans = append(w.node.Spans, &Span{
		Text:     text,
		Element:  elem,
		Props:    props,
		FontSize: size,
		Position: w.position(),
		Path:     w.path,
	})
	n := utf8.RuneCountInString(text)
	for _, p := range w.positions {
		p.offset += n
	}
}

// position collects the positioning lists for the next characters. For
// each axis the innermost element with values left for these characters
// wins.
func (w *textWalker) position() placement.LengthAttributes {
	var la placement.LengthAttributes
	for i := len(w.positions) - 1; i >= 0; i-- {
		p := w.positions[i]
		if la.X == nil {
			la.X = rest(p.attrs.X, p.offset)
		}
		if la.Y == nil {
			la.Y = rest(p.attrs.Y, p.offset)
		}
		if la.DX == nil {
			la.DX = rest(p.attrs.DX, p.offset)
		}
		if la.DY == nil {
			la.DY = rest(p.attrs.DY, p.offset)
		}
		if la.Rotate == nil && len(p.attrs.Rotate) > 0 {
			if p.offset < len(p.attrs.Rotate) {
				la.Rotate = p.attrs.Rotate[p.offset:]
			} else { // the last rotation holds for all following characters
				la.Rotate = p.attrs.Rotate[len(p.attrs.Rotate)-1:]
			}
		}
	}
	return la
}

func rest(list []dimen.Length, offset int) []dimen.Length {
	if offset >= len(list) {
		return nil
	}
	return list[offset:]
}

// normalize handles white space. Line breaks and tabs become spaces; unless
// white space is preserved, runs of spaces collapse into one and leading
// spaces of the text element are dropped.
func (w *textWalker) normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		if !w.preserve {
			if r == ' ' && w.lastSpace {
				continue
			}
			w.lastSpace = r == ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trimEnd drops trailing spaces of the text element.
func (w *textWalker) trimEnd() {
	if w.preserve {
		return
	}
	spans := w.node.Spans
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Image != nil {
			continue
		}
		spans[i].Text = strings.TrimRight(spans[i].Text, " ")
		if spans[i].Text != "" {
			break
		}
		spans = append(spans[:i], spans[i+1:]...)
	}
	w.node.Spans = spans
}

// --- Text paths ------------------------------------------------------------

func (doc *Document) pathRef(n *html.Node) *PathRef {
	ref := &PathRef{Element: n}
	ref.ID = strings.TrimPrefix(strings.TrimSpace(attr(n, "href")), "#")
	ref.Path = doc.Paths[ref.ID]
	if d := attr(n, "path"); ref.Path == nil && d != "" {
		p, err := gg.ParseSVGPath(d)
		if err != nil {
			tracer().Infof("textPath: %v", err)
		}
		ref.Path = p
	}
	if ref.Path == nil {
		tracer().Infof("textPath references unknown path %q", ref.ID)
	}
	if s := attr(n, "startOffset"); s != "" {
		ref.StartOffset = parseLength(n, "startOffset", s)
	}
	if s := attr(n, "textLength"); s != "" {
		ref.TextLength = parseLength(n, "textLength", s)
	}
	return ref
}

func parseLength(n *html.Node, name, s string) dimen.Length {
	l, err := dimen.ParseLength(s)
	if err != nil {
		tracer().Infof("<%s %s>: %v", n.Data, name, err)
	}
	return l
}
