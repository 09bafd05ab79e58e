package fontregistry

import (
	"strings"

	"github.com/npillmayer/svgtext/core/font"
)

// Alias maps a font name to an installed family with a weight and style.
type Alias struct {
	Family string
	Weight font.Weight
	Style  font.Style
}

// aliases holds PostScript names of widespread fonts, keyed by lower case
// name without spaces.
var aliases = map[string]Alias{
	"arialmt":                      {"Arial", font.WeightNormal, font.StyleNormal},
	"arial-boldmt":                 {"Arial", font.WeightBold, font.StyleNormal},
	"arial-italicmt":               {"Arial", font.WeightNormal, font.StyleItalic},
	"arial-bolditalicmt":           {"Arial", font.WeightBold, font.StyleItalic},
	"arialnarrow":                  {"Arial Narrow", font.WeightNormal, font.StyleNormal},
	"timesnewromanpsmt":            {"Times New Roman", font.WeightNormal, font.StyleNormal},
	"timesnewromanps-boldmt":       {"Times New Roman", font.WeightBold, font.StyleNormal},
	"timesnewromanps-italicmt":     {"Times New Roman", font.WeightNormal, font.StyleItalic},
	"timesnewromanps-bolditalicmt": {"Times New Roman", font.WeightBold, font.StyleItalic},
	"couriernewpsmt":               {"Courier New", font.WeightNormal, font.StyleNormal},
	"couriernewps-boldmt":          {"Courier New", font.WeightBold, font.StyleNormal},
	"couriernewps-italicmt":        {"Courier New", font.WeightNormal, font.StyleItalic},
	"times-roman":                  {"Times", font.WeightNormal, font.StyleNormal},
	"times-bold":                   {"Times", font.WeightBold, font.StyleNormal},
	"times-italic":                 {"Times", font.WeightNormal, font.StyleItalic},
	"helvetica-oblique":            {"Helvetica", font.WeightNormal, font.StyleOblique},
	"helvetica-boldoblique":        {"Helvetica", font.WeightBold, font.StyleOblique},
	"symbolmt":                     {"Symbol", font.WeightNormal, font.StyleNormal},
	"wingdings-regular":            {"Wingdings", font.WeightNormal, font.StyleNormal},
	"msgothic":                     {"MS Gothic", font.WeightNormal, font.StyleNormal},
	"msmincho":                     {"MS Mincho", font.WeightNormal, font.StyleNormal},
	"simsun":                       {"SimSun", font.WeightNormal, font.StyleNormal},
}

// psStyles are the style designators of PostScript names ("Family-Style").
var psStyles = map[string]Alias{
	"regular":     {"", font.WeightNormal, font.StyleNormal},
	"roman":       {"", font.WeightNormal, font.StyleNormal},
	"book":        {"", font.WeightNormal, font.StyleNormal},
	"light":       {"", font.WeightLight, font.StyleNormal},
	"medium":      {"", font.WeightMedium, font.StyleNormal},
	"semibold":    {"", font.WeightSemiBold, font.StyleNormal},
	"bold":        {"", font.WeightBold, font.StyleNormal},
	"black":       {"", font.WeightBlack, font.StyleNormal},
	"italic":      {"", font.WeightNormal, font.StyleItalic},
	"oblique":     {"", font.WeightNormal, font.StyleOblique},
	"bolditalic":  {"", font.WeightBold, font.StyleItalic},
	"boldoblique": {"", font.WeightBold, font.StyleOblique},
	"lightitalic": {"", font.WeightLight, font.StyleItalic},
}

// LookupAlias finds an alias for a font name. Names in the alias table are
// found first. Otherwise names of the form "Family-Style" with a known style
// designator, optionally followed by "MT" or "PS", are split into family and
// aspect, e.g. "Garamond-BoldItalicMT" → Garamond, bold, italic.
func LookupAlias(name string) (Alias, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if a, ok := aliases[key]; ok {
		return a, true
	}
	dash := strings.LastIndex(name, "-")
	if dash <= 0 || dash == len(name)-1 {
		return Alias{}, false
	}
	style := strings.ToLower(StripPostScriptSuffix(name[dash+1:]))
	a, ok := psStyles[style]
	if !ok {
		return Alias{}, false
	}
	a.Family = StripPostScriptSuffix(SplitCamelCase(name[:dash]))
	return a, a.Family != ""
}
