package font

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	gotext "github.com/go-text/typesetting/font"
)

// Style is the slant of a font.
type Style uint8

// Font styles as known to CSS.
const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "normal"
}

// Weight is the OpenType weight class of a font, ranging from 100 to 900.
type Weight int

// Some weights with CSS names.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// IsBold is true for weights of 600 and above.
func (w Weight) IsBold() bool {
	return w >= WeightSemiBold
}

// Stretch is the width of a font as a fraction of the normal width.
type Stretch float32

// Stretch values as known to CSS.
const (
	StretchUltraCondensed Stretch = 0.5
	StretchExtraCondensed Stretch = 0.625
	StretchCondensed      Stretch = 0.75
	StretchSemiCondensed  Stretch = 0.875
	StretchNormal         Stretch = 1.0
	StretchSemiExpanded   Stretch = 1.125
	StretchExpanded       Stretch = 1.25
	StretchExtraExpanded  Stretch = 1.5
	StretchUltraExpanded  Stretch = 2.0
)

// Variant is the CSS font-variant. Only small-caps is distinguished.
type Variant uint8

// Font variants.
const (
	VariantNormal Variant = iota
	VariantSmallCaps
)

func (v Variant) String() string {
	if v == VariantSmallCaps {
		return "small-caps"
	}
	return "normal"
}

// Aspect collects the visual characteristics of a font within its family.
type Aspect struct {
	Style   Style
	Weight  Weight
	Stretch Stretch
	Variant Variant
}

// NormalAspect is the aspect of a regular font.
var NormalAspect = Aspect{Style: StyleNormal, Weight: WeightNormal, Stretch: StretchNormal}

// WithDefaults replaces unset fields by normal values.
func (a Aspect) WithDefaults() Aspect {
	if a.Weight == 0 {
		a.Weight = WeightNormal
	}
	if a.Stretch == 0 {
		a.Stretch = StretchNormal
	}
	return a
}

func (a Aspect) String() string {
	return fmt.Sprintf("%s/%d/%g/%s", a.Style, a.Weight, a.Stretch, a.Variant)
}

// AspectFromDescription converts the aspect of a go-text font description.
func AspectFromDescription(asp gotext.Aspect) Aspect {
	a := Aspect{
		Weight:  Weight(asp.Weight),
		Stretch: Stretch(asp.Stretch),
	}
	if asp.Style == gotext.StyleItalic {
		a.Style = StyleItalic
	}
	return a.WithDefaults()
}

// ---------------------------------------------------------------------------

// ParseWeight interprets a CSS font-weight value. Relative values
// ("bolder", "lighter") are resolved against inherited.
func ParseWeight(s string, inherited Weight) Weight {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "normal", "inherit":
		if s == "inherit" && inherited != 0 {
			return inherited
		}
		return WeightNormal
	case "bold":
		return WeightBold
	case "bolder":
		if inherited == 0 {
			inherited = WeightNormal
		}
		switch {
		case inherited < WeightNormal:
			return WeightNormal
		case inherited < WeightSemiBold:
			return WeightBold
		}
		return WeightBlack
	case "lighter":
		if inherited == 0 {
			inherited = WeightNormal
		}
		switch {
		case inherited < WeightSemiBold:
			return WeightThin
		case inherited < WeightExtraBold:
			return WeightNormal
		}
		return WeightBold
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 1000 {
		return Weight(n)
	}
	tracer().Debugf("cannot interpret font-weight %q, using normal", s)
	return WeightNormal
}

// ParseStyle interprets a CSS font-style value.
func ParseStyle(s string) Style {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "italic":
		return StyleItalic
	case strings.HasPrefix(s, "oblique"):
		return StyleOblique
	}
	return StyleNormal
}

// ParseStretch interprets a CSS font-stretch value, either a keyword or
// a percentage.
func ParseStretch(s string) Stretch {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "ultra-condensed":
		return StretchUltraCondensed
	case "extra-condensed":
		return StretchExtraCondensed
	case "condensed":
		return StretchCondensed
	case "semi-condensed":
		return StretchSemiCondensed
	case "semi-expanded":
		return StretchSemiExpanded
	case "expanded":
		return StretchExpanded
	case "extra-expanded":
		return StretchExtraExpanded
	case "ultra-expanded":
		return StretchUltraExpanded
	}
	if strings.HasSuffix(s, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32); err == nil && f > 0 {
			return Stretch(f / 100)
		}
	}
	return StretchNormal
}

// ParseVariant interprets a CSS font-variant value.
func ParseVariant(s string) Variant {
	if strings.Contains(strings.ToLower(s), "small-caps") {
		return VariantSmallCaps
	}
	return VariantNormal
}

// ---------------------------------------------------------------------------

// GuessAspect trys to guess a font's style and weight from the
// font's file name, e.g. "Clarendon-BoldItalic.ttf".
func GuessAspect(fontfilename string) Aspect {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	a := NormalAspect
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			a.Weight = WeightLight
			return a
		case "normal", "medium", "regular", "r":
			return a
		case "bold", "b":
			a.Weight = WeightBold
			return a
		case "xbold", "black":
			a.Weight = WeightExtraBold
			return a
		}
	}
	if strings.Contains(fontfilename, "italic") {
		a.Style = StyleItalic
	} else if strings.Contains(fontfilename, "oblique") {
		a.Style = StyleOblique
	}
	if strings.Contains(fontfilename, "light") {
		a.Weight = WeightLight
	}
	if strings.Contains(fontfilename, "semibold") {
		a.Weight = WeightSemiBold
	} else if strings.Contains(fontfilename, "bold") {
		a.Weight = WeightBold
	}
	if strings.Contains(fontfilename, "condensed") {
		a.Stretch = StretchCondensed
	}
	return a
}

// ---------------------------------------------------------------------------

// VariantName returns a name for an aspect as used by font descriptors:
// "regular", "italic", or a weight followed by a style, e.g. "700italic".
func VariantName(a Aspect) string {
	a = a.WithDefaults()
	style := ""
	if a.Style != StyleNormal {
		style = a.Style.String()
	}
	if a.Weight == WeightNormal {
		if style == "" {
			return "regular"
		}
		return style
	}
	return strconv.Itoa(int(a.Weight)) + style
}

var variantWeights = []struct {
	name   string
	weight Weight
}{ // order matters: "semibold" before "bold", "extralight" before "light"
	{"thin", WeightThin},
	{"hairline", WeightThin},
	{"extralight", WeightExtraLight},
	{"ultralight", WeightExtraLight},
	{"light", WeightLight},
	{"medium", WeightMedium},
	{"semibold", WeightSemiBold},
	{"demibold", WeightSemiBold},
	{"extrabold", WeightExtraBold},
	{"ultrabold", WeightExtraBold},
	{"bold", WeightBold},
	{"black", WeightBlack},
	{"heavy", WeightBlack},
}

var leadingWeight = regexp.MustCompile(`^[1-9]00`)

// ParseVariantName interprets a variant or style name, as used by font
// descriptors and font configuration tools, e.g. "regular", "bolditalic",
// "700italic" or "Semibold Italic".
func ParseVariantName(variantName string) Aspect {
	v := strings.ToLower(variantName)
	v = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(v)
	a := NormalAspect
	if w := leadingWeight.FindString(v); w != "" {
		n, _ := strconv.Atoi(w)
		a.Weight = Weight(n)
		v = v[len(w):]
	} else {
		for _, vw := range variantWeights {
			if strings.Contains(v, vw.name) {
				a.Weight = vw.weight
				break
			}
		}
	}
	if strings.Contains(v, "italic") {
		a.Style = StyleItalic
	} else if strings.Contains(v, "obliq") {
		a.Style = StyleOblique
	}
	return a
}
