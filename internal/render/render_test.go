package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/roundrobin/internal/fixture"
)

func teams(names ...string) []fixture.Team {
	out := make([]fixture.Team, len(names))
	for i, n := range names {
		out[i] = fixture.Team{ID: n, Name: n}
	}
	return out
}

func TestLinesCollapseBye(t *testing.T) {
	s, err := fixture.Generate("League", teams("Atlas", "Juventus", "Barcelona"), fixture.WithSeed(1))
	require.NoError(t, err)

	for _, r := range s.Rounds() {
		lines := Lines(r)
		require.Len(t, lines, 2, "round %d", r.Number)
		assert.False(t, lines[0].Resting, "round %d: match line marked resting", r.Number)

		last := lines[1]
		assert.True(t, last.Resting, "round %d: last line should be the resting team", r.Number)
		assert.NotEqual(t, fixture.ByeName, last.Home, "round %d: bye leaked into display", r.Number)
		assert.Empty(t, last.Guest, "round %d", r.Number)
		assert.True(t, strings.HasSuffix(last.String(), " rests"), "round %d: resting line = %q", r.Number, last.String())
	}
}

func TestText(t *testing.T) {
	s, err := fixture.Generate("Liga Local", teams("Atlas", "Juventus", "Barcelona", "Chivas", "Toluca"), fixture.WithSeed(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s))
	out := buf.String()

	t.Run("header", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "Liga Local\n==========\n"), "unexpected header:\n%s", out)
	})

	t.Run("every round printed", func(t *testing.T) {
		for i := 1; i <= 5; i++ {
			assert.Contains(t, out, fmt.Sprintf("Round %d\n", i))
		}
	})

	t.Run("rests and no bye marker", func(t *testing.T) {
		assert.Equal(t, 5, strings.Count(out, "(rests)"))
		assert.NotContains(t, out, fixture.ByeName)
	})

	t.Run("matches", func(t *testing.T) {
		assert.Equal(t, 10, strings.Count(out, " vs "))
	})
}

var errClosed = errors.New("closed")

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errClosed
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestTextReportsWriteErrors(t *testing.T) {
	s, err := fixture.Generate("Liga Local", teams("Atlas", "Juventus", "Barcelona"), fixture.WithSeed(3))
	require.NoError(t, err)

	t.Run("title", func(t *testing.T) {
		err := Text(&failingWriter{}, s)
		require.Error(t, err)
		assert.ErrorIs(t, err, errClosed)
		assert.Contains(t, err.Error(), "writing title")
	})

	t.Run("round", func(t *testing.T) {
		err := Text(&failingWriter{limit: len("Liga Local\n==========\n")}, s)
		require.Error(t, err)
		assert.ErrorIs(t, err, errClosed)
		assert.Contains(t, err.Error(), "writing round 1")
	})
}

func TestLineString(t *testing.T) {
	assert.Equal(t, "ATLAS Vs. TOLUCA", (Line{Home: "ATLAS", Guest: "TOLUCA"}).String())
}
