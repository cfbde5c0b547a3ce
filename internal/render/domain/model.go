package domain

import "strings"

// Format is the requested artifact type
type Format string

const (
	FormatMP4 Format = "mp4"
	FormatGIF Format = "gif"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// DefaultFormat is used when the request omits format
const DefaultFormat = FormatMP4

// formatExtensions maps each format to the file extensions accepted for it
var formatExtensions = map[Format][]string{
	FormatMP4: {"mp4"},
	FormatGIF: {"gif"},
	FormatPNG: {"png"},
	FormatSVG: {"svg"},
}

// ParseFormat lower-cases a requested format and checks it is known.
// Surrounding whitespace and the empty string are rejected.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	f := Format(s)
	if _, ok := formatExtensions[f]; !ok {
		return "", &ValidationError{Err: ErrUnsupportedFormat, Message: "unsupported format: " + s}
	}
	return f, nil
}

// Extensions returns the extensions matched by a strict artifact search
func (f Format) Extensions() []string {
	return append([]string(nil), formatExtensions[f]...)
}

// AllExtensions is the union of every recognized format's extensions
func AllExtensions() []string {
	out := make([]string, 0, len(formatExtensions))
	for _, f := range []Format{FormatMP4, FormatGIF, FormatPNG, FormatSVG} {
		out = append(out, formatExtensions[f]...)
	}
	return out
}

// Quality is the coarse render tier
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

var qualityFlags = map[Quality]string{
	QualityLow:    "-ql",
	QualityMedium: "-qm",
	QualityHigh:   "-qh",
}

// ParseQuality never fails: anything unrecognized falls back to low.
func ParseQuality(s string) Quality {
	q := Quality(s)
	if _, ok := qualityFlags[q]; ok {
		return q
	}
	return QualityLow
}

// Flag returns the engine command-line flag for the tier
func (q Quality) Flag() string {
	if flag, ok := qualityFlags[q]; ok {
		return flag
	}
	return qualityFlags[QualityLow]
}

// RenderRequest is one validated render job
type RenderRequest struct {
	Code    string
	Scene   string
	Format  Format
	Quality Quality
}

// NewRenderRequest validates raw request fields and applies defaults.
// A nil format means the field was absent; only then is DefaultFormat used.
func NewRenderRequest(code, scene string, format *string, quality string) (*RenderRequest, error) {
	if code == "" || scene == "" {
		return nil, &ValidationError{Err: ErrInvalidInput, Message: "missing 'code' or 'scene'"}
	}
	f := DefaultFormat
	if format != nil {
		var err error
		if f, err = ParseFormat(*format); err != nil {
			return nil, err
		}
	}
	return &RenderRequest{
		Code:    code,
		Scene:   scene,
		Format:  f,
		Quality: ParseQuality(quality),
	}, nil
}

// RenderResult is the artifact produced by a successful job
type RenderResult struct {
	Filename string
	Data     []byte
	Stdout   string
	Stderr   string
}
