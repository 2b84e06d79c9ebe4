// Package analysis turns the leading bytes of a non-text file into a short
// textual summary for the preview pane.
package analysis

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"filescout/internal/log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// Analyzer describes one family of binary files.
type Analyzer interface {
	// CanHandle checks if this analyzer is suitable for the given content type
	CanHandle(mtype *mimetype.MIME) bool
	// Describe returns summary lines, or false when data holds nothing to show.
	Describe(path string, data []byte) ([]string, bool)
}

// ImageAnalyzer summarises the EXIF block of JPEG and TIFF images.
type ImageAnalyzer struct{}

func (a *ImageAnalyzer) CanHandle(mtype *mimetype.MIME) bool {
	return mtype.Is("image/jpeg") || mtype.Is("image/tiff")
}

// exifFields are shown in this order when present.
var exifFields = []struct {
	label string
	name  exif.FieldName
}{
	{"Camera make", exif.Make},
	{"Camera model", exif.Model},
	{"Lens", exif.LensModel},
	{"Taken", exif.DateTimeOriginal},
	{"Width", exif.PixelXDimension},
	{"Height", exif.PixelYDimension},
	{"Exposure", exif.ExposureTime},
	{"ISO", exif.ISOSpeedRatings},
	{"Software", exif.Software},
}

func (a *ImageAnalyzer) Describe(path string, data []byte) ([]string, bool) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("no EXIF data")
		return nil, false
	}

	var lines []string
	for _, f := range exifFields {
		tag, err := x.Get(f.name)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			val = strings.Trim(tag.String(), `"`)
		}
		if val = strings.TrimSpace(val); val != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", f.label, val))
		}
	}
	if lat, long, err := x.LatLong(); err == nil {
		lines = append(lines, fmt.Sprintf("Location: %.5f, %.5f", lat, long))
	}
	return lines, len(lines) > 0
}

var registerParsers sync.Once

// Engine runs the first analyzer that accepts a file's content type.
type Engine struct {
	analyzers []Analyzer // List of registered analyzers
}

// New creates an engine with the default analyzers registered.
func New() *Engine {
	registerParsers.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})
	engine := &Engine{}
	engine.Register(&ImageAnalyzer{})
	return engine
}

// Register adds an analyzer after the existing ones.
func (e *Engine) Register(analyzer Analyzer) {
	e.analyzers = append(e.analyzers, analyzer)
}

// Summary describes data, the leading bytes of the file at path. The first
// line names the detected content type. It returns false when no analyzer
// has anything to say.
func (e *Engine) Summary(path string, data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	for _, a := range e.analyzers {
		if !a.CanHandle(mtype) {
			continue
		}
		if lines, ok := a.Describe(path, data); ok {
			return "[" + mtype.String() + "]\n" + strings.Join(lines, "\n") + "\n", true
		}
	}
	return "", false
}
