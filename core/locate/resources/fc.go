package resources

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/exec"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/svgtext/core"
	"github.com/npillmayer/svgtext/core/font"
)

func findFontConfigBinary(conf schuko.Configuration) (path string, err error) {
	path = conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		err = errors.New("fontconfig not configured")
	}
	return
}

func cacheFontConfigList(conf schuko.Configuration, update bool) (string, bool) {
	appkey := conf.GetString("app-key")
	tracer().Debugf("config[app-key] = %s", appkey)
	uconfdir, err := os.UserConfigDir()
	if appkey == "" || err != nil {
		tracer().Errorf("user config directory not set")
		return "", false
	}
	fcListFilename := path.Join(uconfdir, appkey, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil {
		// fontlist already exists
		if !update {
			return fcListFilename, true
		}
	} else { // create config sub-dir for this application
		dir := path.Join(uconfdir, appkey)
		if _, err = os.Stat(dir); os.IsNotExist(err) {
			err = os.MkdirAll(dir, 0755)
			if err != nil {
				err = core.WrapError(err, core.EINVALID,
					"user configuration path cannot be created: %s", dir)
				core.UserError(err)
				return "", false
			}
		}
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", false
	}
	if !path.IsAbs(fcpath) {
		err = core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
	}
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
		core.UserError(err)
		return "", false
	}
	return fcListFilename, true
}

// loadFontConfigList reads the fontconfig font list, calling 'fc-list' once
// if the list is not yet cached. We call the binary instead of using the C
// library because of possible version issues. If fontconfig is not
// configured, an empty list is returned.
//
// Loading is done once per process.
func loadFontConfigList(conf schuko.Configuration) ([]font.Descriptor, bool) {
	loadFontConfigListTask.Do(func() {
		fontConfigDescriptors, loadedFontConfigListOK = readFontConfigList(conf)
		tracer().Infof("loaded fontconfig list: %d fonts", len(fontConfigDescriptors))
	})
	return fontConfigDescriptors, loadedFontConfigListOK
}

var loadFontConfigListTask sync.Once
var loadedFontConfigListOK bool
var fontConfigDescriptors []font.Descriptor

func readFontConfigList(conf schuko.Configuration) ([]font.Descriptor, bool) {
	if _, err := findFontConfigBinary(conf); err != nil {
		return nil, false
	}
	fclist, ok := cacheFontConfigList(conf, false)
	if !ok {
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
		core.UserError(err)
		return nil, false
	}
	defer fc.Close()
	descs, err := parseFontConfigList(fc)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list: %s", fclist)
		core.UserError(err)
		return descs, false
	}
	return descs, true
}

// parseFontConfigList reads lines of 'fc-list' output, e.g.
//
//    /usr/share/fonts/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
func parseFontConfigList(r io.Reader) ([]font.Descriptor, error) {
	var descs []font.Descriptor
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if !isFontFile(fontpath) {
			ttc++
			continue
		}
		fontname := strings.TrimSpace(strings.Split(fields[1], ",")[0])
		fontname = strings.TrimPrefix(fontname, ".")
		aspect := font.GuessAspect(fontpath)
		if len(fields) > 2 {
			style := strings.TrimPrefix(strings.TrimSpace(fields[2]), "style=")
			aspect = font.ParseVariantName(strings.Split(style, ",")[0])
		}
		descs = append(descs, font.Descriptor{
			Family:   fontname,
			Path:     fontpath,
			Variants: []string{font.VariantName(aspect)},
			Files:    []string{fontpath},
		})
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not yet supported", ttc)
	}
	return descs, scanner.Err()
}
