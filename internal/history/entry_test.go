package history

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestEntry_TextPersistsAsString(t *testing.T) {
	b, err := json.Marshal([]Entry{NewText("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `["hello"]`, string(b))
}

func TestEntry_ImagePersistsAsObject(t *testing.T) {
	b, err := json.Marshal(NewImage([]byte{1, 2, 3}, FormatPNG))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"image","format":"png","data":"AQID"}`, string(b))
}

func TestEntry_UnmarshalAcceptsTextObject(t *testing.T) {
	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(`["plain", {"kind":"text","text":"tagged"}]`), &entries))

	require.Len(t, entries, 2)
	assert.Equal(t, NewText("plain"), entries[0])
	assert.Equal(t, NewText("tagged"), entries[1])
}

func TestEntry_UnmarshalRejectsUnknownKind(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"audio"}`), &e))
}

func TestEntry_NewImageCopies(t *testing.T) {
	buf := []byte{1, 2, 3}
	e := NewImage(buf, "")
	buf[0] = 9

	assert.Equal(t, byte(1), e.Data[0])
	assert.Equal(t, FormatPNG, e.Format)
	assert.Equal(t, "image/png", e.MIME())
}

func TestEntry_Equal(t *testing.T) {
	assert.True(t, NewText("a").Equal(NewText("a")))
	assert.False(t, NewText("a").Equal(NewText("b")))
	assert.True(t, NewImage([]byte{1}, FormatPNG).Equal(NewImage([]byte{1}, FormatPNG)))
	assert.False(t, NewImage([]byte{1}, FormatPNG).Equal(NewImage([]byte{2}, FormatPNG)))
	assert.False(t, NewText("a").Equal(NewImage([]byte("a"), FormatPNG)))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "  hello  ", "hello"},
		{"wraps", "the quick brown fox jumps over", "the quick brown fox\njumps over"},
		{
			"truncates after three lines",
			"the quick brown fox jumps over the lazy dog and keeps running far away",
			"the quick brown fox\njumps over the lazy\ndog and keeps...",
		},
		{"long word", "abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopq..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(NewText(tt.in)))
		})
	}
}

func TestLabel_Image(t *testing.T) {
	assert.Equal(t, "[image 4x3 png]", Label(NewImage(pngBytes(t, 4, 3), FormatPNG)))
	assert.Equal(t, "[image png]", Label(NewImage([]byte("junk"), FormatPNG)))
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		NewText("Hello World"),
		NewImage(pngBytes(t, 2, 2), FormatPNG),
		NewText("goodbye"),
	}

	assert.Equal(t, entries, Filter(entries, "   "))
	assert.Equal(t, []Entry{entries[0]}, Filter(entries, " WORLD "))
	assert.Equal(t, []Entry{entries[1]}, Filter(entries, "image"))
	assert.Empty(t, Filter(entries, "absent"))
}

func TestFuzzyFilter(t *testing.T) {
	entries := []Entry{NewText("git status"), NewText("go build"), NewText("gist")}

	assert.Equal(t, entries, FuzzyFilter(entries, " "))
	assert.Equal(t, []Entry{entries[2], entries[0]}, FuzzyFilter(entries, "GST"))
	assert.Empty(t, FuzzyFilter(entries, "zz"))
}

func TestMatcher(t *testing.T) {
	for _, mode := range []string{"", MatchSubstring, MatchFuzzy} {
		f, err := Matcher(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, f)
	}
	_, err := Matcher("regex")
	assert.Error(t, err)
}
