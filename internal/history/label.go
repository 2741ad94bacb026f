package history

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder for DecodeConfig
	"strings"
)

const (
	labelWidth = 20
	labelLines = 3
)

// Label renders a compact list label: text is word-wrapped to at most
// labelLines lines of labelWidth runes, with "..." marking truncation.
// Images render as "[image WxH png]".
func Label(e Entry) string {
	switch e.Kind {
	case KindText:
		return wrapLabel(e.Text)
	case KindImage:
		return imageLabel(e)
	default:
		return ""
	}
}

// Preview returns the full content shown in a detail pane.
func Preview(e Entry) string {
	switch e.Kind {
	case KindText:
		return e.Text
	case KindImage:
		return fmt.Sprintf("%s\n%d bytes", imageLabel(e), len(e.Data))
	default:
		return ""
	}
}

// Filter returns the entries whose label or text contains query,
// case-insensitively. A blank query returns entries unchanged.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(searchText(e)), q) {
			out = append(out, e)
		}
	}
	return out
}

// searchText is what a query is matched against: the text itself, or the
// label for images.
func searchText(e Entry) string {
	if e.Kind == KindImage {
		return imageLabel(e)
	}
	return e.Text
}

func imageLabel(e Entry) string {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(e.Data))
	if err != nil {
		return fmt.Sprintf("[image %s]", e.Format)
	}
	return fmt.Sprintf("[image %dx%d %s]", cfg.Width, cfg.Height, e.Format)
}

func wrapLabel(text string) string {
	text = strings.TrimSpace(text)
	if runeLen(text) <= labelWidth {
		return text
	}

	var lines []string
	cur := ""
	truncated := false
	for _, word := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = word
		case runeLen(cur)+1+runeLen(word) <= labelWidth:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
		if len(lines) == labelLines {
			truncated = true
			cur = ""
			break
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	for i, l := range lines {
		if runeLen(l) > labelWidth {
			lines[i] = ellipsis(l)
			if i == len(lines)-1 {
				truncated = false
			}
		}
	}
	if truncated {
		lines[len(lines)-1] = ellipsis(lines[len(lines)-1])
	}
	return strings.Join(lines, "\n")
}

// ellipsis cuts s so that s plus "..." fits in labelWidth.
func ellipsis(s string) string {
	r := []rune(s)
	if len(r) > labelWidth-3 {
		r = r[:labelWidth-3]
	}
	return string(r) + "..."
}

func runeLen(s string) int { return len([]rune(s)) }
