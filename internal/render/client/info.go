package client

import "strings"

// Options are the render parameters a user can put on a code fence, e.g.
// "manim scene=MyScene format=gif quality=medium".
type Options struct {
	Scene   string
	Format  string
	Quality string
}

// ParseInfoString reads scene/format/quality key=value pairs separated by
// whitespace. Other tokens and keys are ignored.
func ParseInfoString(info string) Options {
	var opts Options
	for _, part := range strings.Fields(info) {
		kv := strings.Split(part, "=")
		if len(kv) != 2 {
			continue
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch k {
		case "scene":
			opts.Scene = v
		case "format":
			opts.Format = v
		case "quality":
			opts.Quality = v
		}
	}
	return opts
}

// WithDefaults fills empty fields from d
func (o Options) WithDefaults(d Options) Options {
	if o.Scene == "" {
		o.Scene = d.Scene
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Quality == "" {
		o.Quality = d.Quality
	}
	return o
}

// MIMEType maps an artifact extension to its content type
func MIMEType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	case "gif":
		return "image/gif"
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
