package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDeriver() *Deriver {
	return NewDeriver(map[string]int{"s2": 2, "s3": 3}, "Tagesform")
}

func TestDeriveSeasonFromKeyPrefix(t *testing.T) {
	d := testDeriver()

	assert.Equal(t, 2, d.Derive("s2/folge-1.mp3", "").Season)
	assert.Equal(t, 3, d.Derive("s3/folge-1.mp3", "").Season)
	assert.Equal(t, 0, d.Derive("archive/folge-1.mp3", "").Season)
}

func TestDeriveEpisodeFromTitle(t *testing.T) {
	d := testDeriver()

	assert.Equal(t, 12, d.Derive("", "Tagesform 12 - Der Anfang").Episode)
	assert.Equal(t, 8, d.Derive("", "Tagesform 8.5 Spezial").Episode)
	assert.Equal(t, 8, d.Derive("", "Tagesform8,5").Episode)
	assert.Equal(t, 0, d.Derive("", "Andere Show 12").Episode)
	assert.Equal(t, 0, d.Derive("", "").Episode)
}

func TestDeriveMismatchOmitsSilently(t *testing.T) {
	d := testDeriver()

	got := d.Derive("misc/file.mp3", "untitled")
	assert.Zero(t, got.Season)
	assert.Zero(t, got.Episode)
}
