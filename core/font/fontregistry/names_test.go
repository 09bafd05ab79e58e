package fontregistry

import (
	"testing"

	"github.com/npillmayer/svgtext/core/font"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFamily(t *testing.T) {
	assert.Equal(t, "times new roman", NormalizeFamily(` "Times  New Roman" `))
	assert.Equal(t, "noto sans", NormalizeFamily("Noto\tSans"))
}

func TestSplitCamelCase(t *testing.T) {
	for in, out := range map[string]string{
		"TimesNewRomanPSMT": "Times New Roman PSMT",
		"PSFont":            "PS Font",
		"Font2Go":           "Font2 Go",
		"Times New Roman":   "Times New Roman",
		"arial":             "arial",
	} {
		assert.Equal(t, out, SplitCamelCase(in), in)
	}
	assert.Equal(t, "Times New Roman", StripPostScriptSuffix("Times New Roman PSMT"))
	assert.Equal(t, "Arial", StripPostScriptSuffix("ArialMT"))
	assert.Equal(t, "MT", StripPostScriptSuffix("MT"))
}

func TestNameVariants(t *testing.T) {
	assert.Equal(t, []string{"Noto-Sans", "Noto Sans"}, nameVariants("Noto-Sans"))
	assert.Equal(t, []string{"TimesNewRomanPSMT", "Times New Roman"}, nameVariants("TimesNewRomanPSMT"))
	assert.Equal(t, []string{"Arial"}, nameVariants("Arial"))
}

func TestGenericNames(t *testing.T) {
	g, ok := Generic(" Sans-Serif ")
	assert.True(t, ok)
	assert.Equal(t, "sans-serif", g)
	g, _ = Generic("fantasy")
	assert.Equal(t, "sans-serif", g)
	_, ok = Generic("Arial")
	assert.False(t, ok)
	assert.Equal(t, []string{"Brand", "Times New Roman", "serif"},
		ParseFamilyList(`Brand, "Times New Roman",serif,`))
}

func TestLookupAlias(t *testing.T) {
	a, ok := LookupAlias("Arial-BoldMT")
	assert.True(t, ok)
	assert.Equal(t, Alias{"Arial", font.WeightBold, font.StyleNormal}, a)
	a, ok = LookupAlias("Garamond-BoldItalicMT")
	assert.True(t, ok)
	assert.Equal(t, Alias{"Garamond", font.WeightBold, font.StyleItalic}, a)
	a, ok = LookupAlias("MinionPro-Regular")
	assert.True(t, ok)
	assert.Equal(t, "Minion Pro", a.Family)
	_, ok = LookupAlias("Noto-Sans")
	assert.False(t, ok)
	_, ok = LookupAlias("Arial")
	assert.False(t, ok)
}
