package fontregistry

import (
	"sort"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/svgtext/core/font"
	"github.com/npillmayer/svgtext/core/locate/resources"
)

// FontSource enumerates installed fonts and loads font files.
type FontSource interface {
	// Scan lists the installed fonts. It is called once per registry.
	Scan() []font.Descriptor
	// Load loads a font file, as referenced by a descriptor.
	Load(path string) (font.Typeface, error)
}

// Registry is a type for holding information about installed fonts.
//
// The index of font families is built on first use. Lookups are guarded by
// a mutex, as fonts are loaded lazily and cached.
type Registry struct {
	sync.Mutex
	conf     schuko.Configuration
	source   FontSource
	scanning sync.Once
	families *treemap.Map            // registry key => *font.Descriptor
	loaded   map[string]font.Typeface // file path => typeface
	failed   map[string]bool          // file paths which failed to load
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// installed fonts. It is configured from conf on first call; subsequent calls
// ignore their argument.
func GlobalRegistry(conf schuko.Configuration) *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry(conf, nil)
	})
	return globalFontRegistry
}

// NewRegistry creates a registry for fonts from src. If src is nil, fonts
// installed on the host are used. conf may be nil.
func NewRegistry(conf schuko.Configuration, src FontSource) *Registry {
	if src == nil {
		src = resources.NewSystemFontSource(conf)
	}
	return &Registry{
		conf:     conf,
		source:   src,
		families: treemap.NewWithStringComparator(),
		loaded:   make(map[string]font.Typeface),
		failed:   make(map[string]bool),
	}
}

func (fr *Registry) populate() {
	descs := fr.source.Scan()
	fr.Lock()
	defer fr.Unlock()
	for _, d := range descs {
		key := registryKey(d.Family)
		if key == "" {
			continue
		}
		if v, found := fr.families.Get(key); found {
			merged := v.(*font.Descriptor)
			mergeVariants(merged, d)
			continue
		}
		desc := d
		desc.Variants = append([]string(nil), d.Variants...)
		desc.Files = append([]string(nil), d.Files...)
		fillFiles(&desc)
		fr.families.Put(key, &desc)
	}
	tracer().Infof("font registry knows %d font families", fr.families.Size())
}

// fillFiles makes Files parallel to Variants.
func fillFiles(d *font.Descriptor) {
	if len(d.Variants) == 0 {
		d.Variants = []string{"regular"}
	}
	for len(d.Files) < len(d.Variants) {
		d.Files = append(d.Files, d.Path)
	}
}

func mergeVariants(into *font.Descriptor, d font.Descriptor) {
	fillFiles(&d)
	for i, v := range d.Variants {
		known := false
		for _, w := range into.Variants {
			known = known || w == v
		}
		if !known {
			into.Variants = append(into.Variants, v)
			into.Files = append(into.Files, d.Files[i])
		}
	}
	if into.Path == "" || (d.Path != "" && MatchStyle(firstVariant(d), font.StyleNormal) == PerfectConfidence) {
		into.Path = d.Path
	}
}

func firstVariant(d font.Descriptor) string {
	if len(d.Variants) == 0 {
		return "regular"
	}
	return d.Variants[0]
}

// Lookup finds the descriptor of an installed font family. Names are
// compared after normalization, ignoring spaces.
func (fr *Registry) Lookup(family string) (font.Descriptor, bool) {
	fr.scanning.Do(fr.populate)
	fr.Lock()
	defer fr.Unlock()
	if v, found := fr.families.Get(registryKey(family)); found {
		return *v.(*font.Descriptor), true
	}
	return font.Descriptor{}, false
}

// Typeface returns the variant of an installed font family closest to
// aspect. Fonts are loaded on first use. If the family is unknown or its
// font file cannot be loaded, ok is false.
func (fr *Registry) Typeface(family string, aspect font.Aspect) (tf font.Typeface, ok bool) {
	desc, found := fr.Lookup(family)
	if !found {
		return nil, false
	}
	variant, confidence := BestVariant(desc, aspect)
	tracer().Debugf("registry: family %q, variant %q, match confidence %d", desc.Family, variant, confidence)
	return fr.load(desc.FileFor(variant))
}

func (fr *Registry) load(path string) (font.Typeface, bool) {
	if path == "" {
		return nil, false
	}
	fr.Lock()
	defer fr.Unlock()
	if tf, ok := fr.loaded[path]; ok {
		return tf, true
	}
	if fr.failed[path] {
		return nil, false
	}
	tf, err := fr.source.Load(path)
	if err != nil || tf == nil {
		tracer().Infof("font registry cannot load %s: %v", path, err)
		fr.failed[path] = true
		return nil, false
	}
	fr.loaded[path] = tf
	return tf, true
}

// Match returns the installed family matching a pattern (a regular
// expression on family names) most closely for a given aspect.
func (fr *Registry) Match(pattern string, aspect font.Aspect) (font.Descriptor, string, MatchConfidence) {
	fr.scanning.Do(fr.populate)
	fr.Lock()
	descs := make([]font.Descriptor, 0, fr.families.Size())
	for _, v := range fr.families.Values() {
		descs = append(descs, *v.(*font.Descriptor))
	}
	fr.Unlock()
	return ClosestMatch(descs, pattern, aspect)
}

// Families returns the names of all installed font families, sorted by
// registry key.
func (fr *Registry) Families() []string {
	fr.scanning.Do(fr.populate)
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, fr.families.Size())
	it := fr.families.Iterator()
	for it.Next() {
		names = append(names, it.Value().(*font.Descriptor).Family)
	}
	return names
}

// --- Generic families ------------------------------------------------------

// GenericFamilies are the generic CSS families the registry knows.
var GenericFamilies = []string{"serif", "sans-serif", "monospace"}

// GenericTypeface returns the typeface for a generic family. Clients may
// configure families with keys 'fonts.generic.serif' etc. If a configured
// family is not installed, one of the packaged Go fonts is used.
func (fr *Registry) GenericTypeface(generic string, aspect font.Aspect) font.Typeface {
	if fr.conf != nil {
		if name := fr.conf.GetString("fonts.generic." + generic); name != "" {
			if tf, ok := fr.Typeface(name, aspect); ok {
				return tf
			}
			tracer().Infof("configured %s font %q not installed", generic, name)
		}
	}
	return font.GoFont(generic == "monospace", aspect)
}

// DefaultTypeface returns the typeface of the default family. It may be
// configured with key 'fonts.default', otherwise Go Regular is used.
func (fr *Registry) DefaultTypeface(aspect font.Aspect) font.Typeface {
	if fr.conf != nil {
		if name := fr.conf.GetString("fonts.default"); name != "" {
			if tf, ok := fr.Typeface(name, aspect); ok {
				return tf
			}
		}
	}
	return font.GoFont(false, aspect)
}

// LogFontList is a helper function to dump the list of known fonts and loaded
// font files to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	tracer().Infof("--- registered fonts ---")
	for _, name := range fr.Families() {
		desc, _ := fr.Lookup(name)
		tracer().Infof("font [%s] = %s", name, strings.Join(desc.Variants, ", "))
	}
	fr.Lock()
	paths := make([]string, 0, len(fr.loaded))
	for p := range fr.loaded {
		paths = append(paths, p)
	}
	fr.Unlock()
	sort.Strings(paths)
	for _, p := range paths {
		tracer().Infof("loaded %s", p)
	}
	tracer().Infof("------------------------")
}

// registryKey normalizes a family name and removes spaces, so that file
// names like "DejaVuSans" match family names like "DejaVu Sans".
func registryKey(family string) string {
	return strings.ReplaceAll(NormalizeFamily(family), " ", "")
}
