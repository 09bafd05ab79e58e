package font

import (
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// Family names of the packaged Go fonts.
const (
	GoFamily     = "Go"
	GoMonoFamily = "Go Mono"
)

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans (Go Regular).
func FallbackFont() *ScalableFont {
	return GoFont(false, NormalAspect)
}

type goFontKey struct {
	mono      bool
	italic    bool
	bold      bool
	medium    bool
	smallcaps bool
}

var goFontsLoading sync.Once

// goFonts holds the parsed packaged Go fonts. It is read-only after loading.
var goFonts map[goFontKey]*ScalableFont

// GoFont returns the packaged Go font closest to a given aspect. If mono is set,
// a variant of Go Mono is returned.
func GoFont(mono bool, aspect Aspect) *ScalableFont {
	goFontsLoading.Do(loadGoFonts)
	key := goFontKey{
		mono:   mono,
		italic: aspect.Style != StyleNormal,
		bold:   aspect.Weight.IsBold(),
	}
	if !mono && !key.bold && aspect.Weight == WeightMedium {
		key.medium = true
	}
	if !mono && !key.bold && aspect.Variant == VariantSmallCaps {
		key.smallcaps, key.medium = true, false
	}
	if f, ok := goFonts[key]; ok {
		return f
	}
	return goFonts[goFontKey{mono: mono}]
}

func loadGoFonts() {
	goFonts = make(map[goFontKey]*ScalableFont)
	for key, ttf := range map[goFontKey][]byte{
		{}:                               goregular.TTF,
		{bold: true}:                     gobold.TTF,
		{italic: true}:                   goitalic.TTF,
		{bold: true, italic: true}:       gobolditalic.TTF,
		{medium: true}:                   gomedium.TTF,
		{smallcaps: true}:                gosmallcaps.TTF,
		{smallcaps: true, italic: true}:  gosmallcapsitalic.TTF,
		{mono: true}:                     gomono.TTF,
		{mono: true, bold: true}:         gomonobold.TTF,
		{mono: true, italic: true}:       gomonoitalic.TTF,
		{mono: true, bold: true, italic: true}: gomonobolditalic.TTF,
	} {
		f, err := ParseOpenTypeFont(ttf)
		if err != nil {
			panic("cannot load packaged Go font") // this cannot happen
		}
		f.Filepath = "internal"
		goFonts[key] = f
	}
	tracer().Debugf("loaded %d packaged Go fonts", len(goFonts))
}
