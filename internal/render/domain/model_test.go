package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuality(t *testing.T) {
	cases := map[string]string{
		"low":    "-ql",
		"medium": "-qm",
		"high":   "-qh",
		"":       "-ql",
		"ultra":  "-ql",
		"HIGH":   "-ql",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseQuality(in).Flag(), "quality %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseFormat("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		assert.Equal(t, "unsupported format: ", err.Error())
	})

	t.Run("does not trim", func(t *testing.T) {
		_, err := ParseFormat(" png ")
		require.Error(t, err)
		assert.Equal(t, "unsupported format:  png ", err.Error())
	})

	t.Run("is case insensitive", func(t *testing.T) {
		f, err := ParseFormat("PNG")
		require.NoError(t, err)
		assert.Equal(t, FormatPNG, f)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := ParseFormat("webm")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		assert.Equal(t, "unsupported format: webm", err.Error())
	})
}

func TestNewRenderRequest(t *testing.T) {
	t.Run("requires code and scene", func(t *testing.T) {
		for _, tc := range []struct{ code, scene string }{
			{"", "Dot"},
			{"print(1)", ""},
			{"", ""},
		} {
			_, err := NewRenderRequest(tc.code, tc.scene, nil, "low")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, "missing 'code' or 'scene'", err.Error())
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		req, err := NewRenderRequest("code", "Dot", nil, "")
		require.NoError(t, err)
		assert.Equal(t, FormatMP4, req.Format)
		assert.Equal(t, QualityLow, req.Quality)
	})

	t.Run("present but empty format is not defaulted", func(t *testing.T) {
		empty := ""
		_, err := NewRenderRequest("code", "Dot", &empty, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})
}

func TestAllExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{"mp4", "gif", "png", "svg"}, AllExtensions())
	assert.Equal(t, []string{"gif"}, FormatGIF.Extensions())
}
