package svgdoc

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/dimen"
	"github.com/npillmayer/svgtext/core/font/fontregistry"
	"github.com/npillmayer/svgtext/engine/placement"
	"github.com/npillmayer/svgtext/engine/style"
	"github.com/npillmayer/svgtext/engine/textrender"
	"golang.org/x/net/html"
)

// ImageVisitor is called for <image> elements inside text, with the current
// text position. Images are not laid out by this package.
type ImageVisitor func(image *html.Node, at gg.Point)

// Options configure the rendering of a document.
type Options struct {
	Resolver *fontregistry.Resolver
	Conf     schuko.Configuration // may be nil
	Images   ImageVisitor         // may be nil
}

// Resolver creates a font resolver which knows the fonts defined in the
// document. private and substitute may be nil.
func (doc *Document) Resolver(registry *fontregistry.Registry, private *fontregistry.PrivateFonts,
	substitute fontregistry.Substitute) *fontregistry.Resolver {
	//
	return fontregistry.NewResolver(registry, doc.Fonts, private, substitute)
}

// Render lays out the text elements of the document and draws them onto
// surface. A text element failing to render is abandoned, the others are
// still drawn. The first error is returned.
func (doc *Document) Render(surface textrender.Surface, opts Options) error {
	if surface == nil || opts.Resolver == nil {
		return core.Error(core.EINVALID, "rendering a document needs a surface and a font resolver")
	}
	var first error
	for _, t := range doc.Texts {
		tr := &textRenderer{doc: doc, text: t, surface: surface, opts: opts}
		if err := tr.render(); err != nil {
			tracer().Errorf("text %q: %v", t.Text(), err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// textRenderer renders the spans of a text element. The cursor is shared by
// all spans, consecutive spans on the same path are collected and drawn
// together.
type textRenderer struct {
	doc       *Document
	text      *TextNode
	surface   textrender.Surface
	opts      Options
	renderers [3]*textrender.Renderer // by kind
	cursor    gg.Point
	path      *PathRef
	builder   *textrender.PathTextBuilder
	pathRun   *style.TextRun // first run on the path
}

func (tr *textRenderer) renderer(kind textrender.Kind) *textrender.Renderer {
	if tr.renderers[kind] == nil {
		tr.renderers[kind] = textrender.NewRenderer(kind, tr.surface, tr.opts.Conf)
	}
	return tr.renderers[kind]
}

func (tr *textRenderer) render() error {
	for _, sp := range tr.text.Spans {
		if sp.Path != tr.path {
			tr.flushPath()
		}
		if sp.Image != nil {
			if tr.opts.Images != nil {
				tr.opts.Images(sp.Image, tr.cursor)
			}
			continue
		}
		run := style.NewTextRun(sp.Text, sp.Props, tr.opts.Resolver, sp.FontSize)
		attrs := sp.Position.Resolve(dimen.Context{FontSize: sp.FontSize}, tr.doc.Width, tr.doc.Height)
		if sp.Path != nil {
			if err := tr.addPathRun(sp, run, attrs); err != nil {
				return err
			}
			continue
		}
		pl := placement.Resolve(attrs, tr.cursor, false)
		r := tr.renderer(textrender.SelectKind(run.WritingMode, false))
		if err := r.RenderRun(run, &tr.cursor, 0, pl); err != nil {
			return err
		}
	}
	tr.flushPath()
	return nil
}

func (tr *textRenderer) addPathRun(sp *Span, run *style.TextRun, attrs placement.Attributes) error {
	if tr.builder == nil {
		tr.path, tr.pathRun = sp.Path, run
		tr.builder = tr.renderer(textrender.OnPath).BeginPath()
	}
	pl := placement.Resolve(attrs, tr.cursor, true)
	before := tr.builder.Measured().Advance()
	if err := tr.builder.AddRun(run, sp.Text, tr.cursor, pl); err != nil {
		return err
	}
	tr.cursor.X += tr.builder.Measured().Advance() - before
	return nil
}

// flushPath draws the text collected for the current path.
func (tr *textRenderer) flushPath() {
	if tr.builder == nil {
		return
	}
	ref := tr.path
	if ref.Path != nil {
		ctx := dimen.Context{FontSize: tr.pathRun.EmSize}
		res := tr.builder.RenderOntoPath(ref.Path, textrender.PathOptions{
			StartOffset:     ref.StartOffset,
			TextStartOffset: tr.text.StartOffset,
			TextLength:      ref.TextLength.Resolve(ctx),
			Anchor:          tr.pathRun.Anchor,
			FontSize:        tr.pathRun.EmSize,
		})
		tracer().Debugf("text on path %q: %d characters, ending at %.2f", ref.ID, res.Drawn, res.Progress)
	} else {
		tracer().Infof("text on unresolved path %q is not drawn", ref.ID)
	}
	tr.path, tr.builder, tr.pathRun = nil, nil, nil
}
