package tagging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *CommentParser {
	t.Helper()
	p, err := NewCommentParser("Europe/Berlin")
	require.NoError(t, err)
	return p
}

func TestParseCommentWithStructuredBlock(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("Hello world\n--\ntags: a, b\ndate: 2022-01-25")
	require.NoError(t, err)

	assert.Equal(t, "Hello world", data.Text)
	assert.Equal(t, []string{"a", "b"}, data.Tags)
	require.NotNil(t, data.Date)
	// 2022-01-25 in Europe/Berlin (UTC+1) is 23:00 the day before in UTC
	assert.True(t, data.Date.Equal(time.Date(2022, 1, 24, 23, 0, 0, 0, time.UTC)),
		"got %s", data.Date)
	assert.Empty(t, data.Extra)
}

func TestParseCommentWithoutDelimiter(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("Just some show notes.\nNo structured data here.")
	require.NoError(t, err)

	assert.Equal(t, "Just some show notes.\nNo structured data here.", data.Text)
	assert.Nil(t, data.Tags)
	assert.Nil(t, data.Date)
	assert.Empty(t, data.Extra)
}

func TestParseCommentTagsAsSequence(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\ntags:\n  - alpha\n  - beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, data.Tags)
}

func TestParseCommentExtraPassthrough(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\nguest: Maria\nrating: 5")
	require.NoError(t, err)

	assert.Equal(t, "Maria", data.Extra["guest"])
	assert.Equal(t, 5, data.Extra["rating"])
	assert.Nil(t, data.Tags)
	assert.Nil(t, data.Date)
}

func TestParseCommentDelimiterWithSurroundingWhitespace(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n  --  \ntags: x")
	require.NoError(t, err)
	assert.Equal(t, "text", data.Text)
	assert.Equal(t, []string{"x"}, data.Tags)
}

func TestParseCommentOnlyFirstDelimiterCounts(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\nnote: \"a\"\nother: \"--\"")
	require.NoError(t, err)
	assert.Equal(t, "a", data.Extra["note"])
	assert.Equal(t, "--", data.Extra["other"])
}

func TestParseCommentNonMappingBlockFails(t *testing.T) {
	p := newParser(t)

	_, err := p.Parse("text\n--\n[1,2,3]")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommentGrammar)

	_, err = p.Parse("text\n--\n- a\n- b")
	assert.ErrorIs(t, err, ErrCommentGrammar)
}

func TestParseCommentInvalidYAMLFails(t *testing.T) {
	p := newParser(t)

	_, err := p.Parse("text\n--\nkey: [unclosed")
	assert.ErrorIs(t, err, ErrCommentGrammar)
}

func TestParseCommentEmptyStructuredSegment(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\n   \n")
	require.NoError(t, err)
	assert.Equal(t, "text", data.Text)
	assert.Empty(t, data.Extra)
}

func TestParseCommentDateWithTime(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\ndate: \"2022-07-01 12:30:00\"")
	require.NoError(t, err)
	require.NotNil(t, data.Date)
	// July in Berlin is UTC+2
	assert.True(t, data.Date.Equal(time.Date(2022, 7, 1, 10, 30, 0, 0, time.UTC)),
		"got %s", data.Date)
}

func TestParseCommentUnparseableDateFails(t *testing.T) {
	p := newParser(t)

	_, err := p.Parse("text\n--\ndate: \"not a date\"")
	assert.ErrorIs(t, err, ErrCommentGrammar)
}

func TestParseCommentNonStringDateIgnored(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("text\n--\ndate: 42")
	require.NoError(t, err)
	assert.Nil(t, data.Date)
}

func TestParseCommentEmpty(t *testing.T) {
	p := newParser(t)

	data, err := p.Parse("")
	require.NoError(t, err)
	assert.Equal(t, "", data.Text)
	assert.Empty(t, data.Extra)
}
