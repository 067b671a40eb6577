package tui

import (
	"testing"
	"time"

	"github.com/litescript/kat-search/internal/kat"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ubuntu", Truncate("ubuntu", 10))
	assert.Equal(t, "ubun…", Truncate("ubuntu 16.04", 5))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "1,234", formatInt(kat.IntOf(1234)))
	assert.Equal(t, "?", formatInt(kat.NaN))
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "?", formatAge(kat.Torrent{PubDate: kat.NaN}))

	week := kat.Torrent{PubDate: kat.IntOf(time.Now().Add(-7 * 24 * time.Hour).UnixMilli())}
	assert.Equal(t, "1 week ago", formatAge(week))
}
