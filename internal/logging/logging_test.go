package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestParseLevel tests level string mapping including the info fallback
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" fatal ", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

// TestInitAndNamed tests one-time init and component-scoped children.
// Init is process-wide, so a single test drives both behaviours.
func TestInitAndNamed(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	Named("github").Info().Str("page", "3").Msg("fetched page")

	out := buf.String()
	assert.Contains(t, out, `"component":"github"`)
	assert.Contains(t, out, `"page":"3"`)
	assert.Contains(t, out, `"message":"fetched page"`)

	// later Init calls must not replace the root
	Init(Options{Level: "error", Format: "console"})
	buf.Reset()
	Named("github").Debug().Msg("still debug")
	assert.Contains(t, buf.String(), "still debug")
}
