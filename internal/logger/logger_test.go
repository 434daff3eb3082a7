package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "  hello ", limit: 10, want: "hello"},
		{name: "exact", in: "hello", limit: 5, want: "hello"},
		{name: "cut", in: "hello world", limit: 5, want: "hello..."},
		{name: "runes", in: "✅✅✅", limit: 2, want: "✅✅..."},
		{name: "zero", in: "hello", limit: 0, want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TruncateForLog(tc.in, tc.limit))
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New(true, true)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(-1), "debug level should be enabled")
}
