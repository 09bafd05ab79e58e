package fontregistry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/font/svgfont"
)

// DefaultFamily is used if no font of a family chain can be found.
const DefaultFamily = font.GoFamily

// Source tells where a resolved font came from.
type Source int8

// Sources of resolved fonts.
const (
	SourceDefault Source = iota
	SourceGeneric
	SourceInstalled
	SourceAlias
	SourcePrivate
	SourceEmbedded
	SourceSubstitute // provided by a Substitute hook
)

func (s Source) String() string {
	switch s {
	case SourceGeneric:
		return "generic"
	case SourceInstalled:
		return "installed"
	case SourceAlias:
		return "alias"
	case SourcePrivate:
		return "private"
	case SourceEmbedded:
		return "embedded"
	case SourceSubstitute:
		return "substitute"
	}
	return "default"
}

// FontFamilyInfo is the result of resolving a font-family chain.
// It is shared between text runs and must not be modified.
type FontFamilyInfo struct {
	Family   string
	Typeface font.Typeface
	Weight   font.Weight
	Style    font.Style
	Stretch  font.Stretch
	Variant  font.Variant
	Embedded *svgfont.Font // set for fonts defined in the document
	// Alternate is used instead of an embedded font by surfaces which cannot
	// draw embedded fonts.
	Alternate *FontFamilyInfo
	Source    Source
}

// Aspect returns the aspect a font has been resolved for.
func (info *FontFamilyInfo) Aspect() font.Aspect {
	return font.Aspect{Style: info.Style, Weight: info.Weight, Stretch: info.Stretch, Variant: info.Variant}
}

// Key identifies a resolution result. Results with equal keys have been
// resolved to the same font.
func (info *FontFamilyInfo) Key() string {
	if info == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s|%s|%s", info.Family, info.Aspect(), info.Source)
}

func (info *FontFamilyInfo) String() string {
	return info.Key()
}

// Substitute is a hook for clients to redirect font names. It is called with
// the name of a font as requested by the document and the default result of
// resolving this name, which is nil if no font has been found. Returning
// def accepts the default, returning nil vetoes it, returning another result
// overrides it. The hook may call Resolve on the resolver it is installed
// in, as long as it does not request name again.
type Substitute func(name string, def *FontFamilyInfo) *FontFamilyInfo

// PrivateFonts is a collection of fonts supplied by the client, which are
// neither installed nor part of the document.
type PrivateFonts struct {
	families map[string][]font.Typeface
}

// Add puts a typeface into the collection, under its family name.
func (pf *PrivateFonts) Add(tf font.Typeface) {
	if pf.families == nil {
		pf.families = make(map[string][]font.Typeface)
	}
	key := NormalizeFamily(tf.Family())
	pf.families[key] = append(pf.families[key], tf)
}

// Lookup returns the typeface of a family closest to aspect.
func (pf *PrivateFonts) Lookup(family string, aspect font.Aspect) (font.Typeface, bool) {
	if pf == nil {
		return nil, false
	}
	cands := pf.families[NormalizeFamily(family)]
	if len(cands) == 0 {
		return nil, false
	}
	return cands[closestCandidate(cands, aspect)], true
}

// --- Resolver --------------------------------------------------------------

// Resolver resolves font-family chains. It caches its results and is safe
// for concurrent use.
type Resolver struct {
	registry   *Registry
	docFonts   *svgfont.Collection
	private    *PrivateFonts
	substitute Substitute
	mx         sync.Mutex
	cache      map[string]*FontFamilyInfo
}

// NewResolver creates a resolver. All arguments except the registry may be nil.
func NewResolver(registry *Registry, docFonts *svgfont.Collection, private *PrivateFonts,
	substitute Substitute) *Resolver {
	//
	if registry == nil {
		panic("font resolver needs a registry")
	}
	return &Resolver{
		registry:   registry,
		docFonts:   docFonts,
		private:    private,
		substitute: substitute,
		cache:      make(map[string]*FontFamilyInfo),
	}
}

// Resolve selects a typeface for a font-family chain. Resolve never fails:
// if no font of the chain is available, a generic family of the chain or
// the default family is used.
//
// Fonts embedded in the document take precedence over later entries of the
// chain. If more than one embedded font matches, the one closest to the
// requested aspect is selected.
func (r *Resolver) Resolve(chain []string, weight font.Weight, style font.Style,
	stretch font.Stretch, variant font.Variant) *FontFamilyInfo {
	//
	aspect := font.Aspect{Style: style, Weight: weight, Stretch: stretch, Variant: variant}.WithDefaults()
	key := strings.Join(chain, ",") + "|" + aspect.String()
	r.mx.Lock()
	info, ok := r.cache[key]
	r.mx.Unlock()
	if ok {
		return info
	}
	// unlocked, as a Substitute hook may resolve other names
	info = r.resolve(chain, aspect)
	tracer().Debugf("font chain %v resolved to %s", chain, info)
	r.mx.Lock()
	defer r.mx.Unlock()
	if first, ok := r.cache[key]; ok {
		return first
	}
	r.cache[key] = info
	return info
}

func (r *Resolver) resolve(chain []string, aspect font.Aspect) *FontFamilyInfo {
	var generic string
	var embedded []*svgfont.Font
	for _, name := range chain {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name == "" {
			continue
		}
		if g, ok := Generic(name); ok {
			if generic == "" {
				generic = g
			}
			continue
		}
		if fonts := r.docFonts.Lookup(name); len(fonts) > 0 {
			embedded = append(embedded, fonts...)
			continue
		}
		if len(embedded) > 0 {
			continue // an earlier entry of the chain is embedded
		}
		info := r.lookup(name, aspect)
		if r.substitute != nil {
			def := info
			if info = r.substitute(name, def); info != nil && info != def {
				sub := *info
				sub.Source = SourceSubstitute
				info = &sub
			}
		}
		if info != nil && info.Typeface != nil {
			return info
		}
	}
	fallback := r.fallback(generic, aspect)
	if len(embedded) > 0 {
		return r.resolveEmbedded(embedded, aspect, fallback)
	}
	return fallback
}

// lookup searches for a non-generic font name: private fonts, aliases,
// installed fonts.
func (r *Resolver) lookup(name string, aspect font.Aspect) *FontFamilyInfo {
	if tf, ok := r.private.Lookup(name, aspect); ok {
		return r.info(tf.Family(), tf, aspect, SourcePrivate)
	}
	if alias, ok := LookupAlias(name); ok {
		a := aspect
		a.Weight, a.Style = alias.Weight, alias.Style
		if tf, ok := r.private.Lookup(alias.Family, a); ok {
			return r.info(alias.Family, tf, a, SourceAlias)
		}
		if tf, ok := r.registry.Typeface(alias.Family, a); ok {
			return r.info(alias.Family, tf, a, SourceAlias)
		}
	}
	for _, n := range nameVariants(name) {
		if tf, ok := r.registry.Typeface(n, aspect); ok {
			desc, _ := r.registry.Lookup(n)
			return r.info(desc.Family, tf, aspect, SourceInstalled)
		}
	}
	return nil
}

func (r *Resolver) fallback(generic string, aspect font.Aspect) *FontFamilyInfo {
	if generic != "" {
		return r.info(generic, r.registry.GenericTypeface(generic, aspect), aspect, SourceGeneric)
	}
	return r.info(DefaultFamily, r.registry.DefaultTypeface(aspect), aspect, SourceDefault)
}

func (r *Resolver) resolveEmbedded(fonts []*svgfont.Font, aspect font.Aspect,
	alternate *FontFamilyInfo) *FontFamilyInfo {
	//
	cands := make([]font.Typeface, len(fonts))
	for i, f := range fonts {
		cands[i] = f
	}
	f := fonts[closestCandidate(cands, aspect)]
	info := r.info(f.Family(), f, f.Aspect(), SourceEmbedded)
	info.Embedded = f
	info.Alternate = alternate
	return info
}

func (r *Resolver) info(family string, tf font.Typeface, aspect font.Aspect, src Source) *FontFamilyInfo {
	return &FontFamilyInfo{
		Family:   family,
		Typeface: tf,
		Weight:   aspect.Weight,
		Style:    aspect.Style,
		Stretch:  aspect.Stretch,
		Variant:  aspect.Variant,
		Source:   src,
	}
}
