package position

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *Tracker, s string, from int) {
	for i := 0; i < len(s); i++ {
		t.Advance(s[i], from+i)
	}
}

func TestTracker_SingleLine(t *testing.T) {
	tr := NewTracker()
	feed(tr, "hello", 0)
	require.Equal(t, 1, tr.Line())
	require.Equal(t, 6, tr.Column(5))
}

func TestTracker_LF(t *testing.T) {
	tr := NewTracker()
	feed(tr, "ab\ncd", 0)
	require.Equal(t, 2, tr.Line())
	require.Equal(t, 2, tr.Column(4)) // 'd' is the second byte of line 2
}

func TestTracker_CRLF_CountsAsOneLine(t *testing.T) {
	tr := NewTracker()
	feed(tr, "ab\r\ncd", 0)
	require.Equal(t, 2, tr.Line())
	require.Equal(t, 2, tr.Column(5))
}

func TestTracker_LoneCR(t *testing.T) {
	tr := NewTracker()
	feed(tr, "ab\rcd", 0)
	require.Equal(t, 2, tr.Line())
	require.Equal(t, 2, tr.Column(4))
}

func TestTracker_BlankLinesCountNormally(t *testing.T) {
	tr := NewTracker()
	feed(tr, "\n\n\na", 0)
	require.Equal(t, 4, tr.Line())
	require.Equal(t, 1, tr.Column(3))
}

func TestTracker_AcrossMultipleFeeds(t *testing.T) {
	tr := NewTracker()
	feed(tr, "line1\nli", 0)
	feed(tr, "ne2\n", 8)
	feed(tr, "x", 12)
	require.Equal(t, 3, tr.Line())
	require.Equal(t, 1, tr.Column(12))
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	feed(tr, "a\nb\nc", 0)
	tr.Reset()
	require.Equal(t, 1, tr.Line())
	require.Equal(t, 1, tr.Column(0))
}
