package resources

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
)

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// SystemFontSource finds fonts installed on the host.
type SystemFontSource struct {
	conf schuko.Configuration
}

// NewSystemFontSource creates a font source for installed fonts. conf may
// be nil. The following configuration keys are respected:
//
//    fonts.scan    if set to false, platform font directories are not scanned
//    fonts.dirs    additional font directories (separated by os.PathListSeparator)
//    fontconfig    absolute path of fontconfig's 'fc-list' binary
//    app-key       sub-folder of the user's config directory for caching
//
func NewSystemFontSource(conf schuko.Configuration) *SystemFontSource {
	return &SystemFontSource{conf: conf}
}

// Scan lists the installed fonts. Font collections (.ttc) are skipped.
func (src *SystemFontSource) Scan() []font.Descriptor {
	var descs []font.Descriptor
	if src.conf == nil || !src.conf.IsSet("fonts.scan") || src.conf.GetBool("fonts.scan") {
		paths := findfont.List()
		tracer().Debugf("go-findfont lists %d font files", len(paths))
		descs = append(descs, descriptorsFromPaths(paths)...)
	}
	if src.conf != nil {
		if dirs := src.conf.GetString("fonts.dirs"); dirs != "" {
			for _, dir := range filepath.SplitList(dirs) {
				descs = append(descs, descriptorsFromPaths(ScanDir(dir))...)
			}
		}
		if fc, ok := loadFontConfigList(src.conf); ok {
			descs = append(descs, fc...)
		}
	}
	tracer().Infof("found %d installed font files", len(descs))
	return descs
}

// Load is part of the FontSource interface of package fontregistry.
func (src *SystemFontSource) Load(path string) (font.Typeface, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NotFound(path)
	}
	return font.LoadOpenTypeFont(path)
}

// Find locates the font file for a font name, using go-findfont.
func Find(name string) (string, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	return path, nil
}

// ScanDir lists the TrueType and OpenType files in a directory tree.
func ScanDir(dir string) []string {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !d.IsDir() && isFontFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		tracer().Infof("cannot scan font directory %s: %v", dir, err)
	}
	return paths
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// descriptorsFromPaths creates font descriptors from font file names,
// e.g. "DejaVuSans-BoldOblique.ttf" is family "DejaVuSans", variant
// "700oblique".
func descriptorsFromPaths(paths []string) []font.Descriptor {
	descs := make([]font.Descriptor, 0, len(paths))
	ttc := 0
	for _, p := range paths {
		if !isFontFile(p) {
			ttc++
			continue
		}
		base := filepath.Base(p)
		base = base[:len(base)-len(filepath.Ext(base))]
		family := base
		if dash := strings.LastIndex(base, "-"); dash > 0 {
			family = base[:dash]
		}
		descs = append(descs, font.Descriptor{
			Family:   family,
			Path:     p,
			Variants: []string{font.VariantName(font.GuessAspect(p))},
			Files:    []string{p},
		})
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not yet supported", ttc)
	}
	return descs
}
