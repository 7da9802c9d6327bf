package chapter

import (
	"strings"
	"unicode"
)

// Placeholder titles used when a chapter has no heading of its own.
const (
	UnnamedTitle  = "未命名章节"
	PrefaceTitle  = "序言"
	FullTextTitle = "全文"
)

// Chapter is a titled, contiguous span of document text.
// Chapters are values; edits build new ones instead of mutating in place.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List is an ordered sequence of chapters in reading order.
type List []Chapter

// New builds a chapter with a single-line title and normalized content.
func New(title, content string) Chapter {
	return Chapter{
		Title:   strings.TrimSpace(title),
		Content: TrimBlankLines(content),
	}
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Equal reports whether both lists hold the same chapters in the same order.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Titles returns the chapter titles in order.
func (l List) Titles() []string {
	titles := make([]string, len(l))
	for i, c := range l {
		titles[i] = c.Title
	}
	return titles
}

// Render joins the list back into one manuscript, each title on its own line
// followed by a blank line and the content.
func (l List) Render() string {
	var sb strings.Builder
	for i, c := range l {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.Title)
		if c.Content != "" {
			sb.WriteString("\n\n")
			sb.WriteString(c.Content)
		}
	}
	return sb.String()
}

// TrimBlankLines drops leading blank lines and all trailing whitespace.
// Indentation on the first text line is kept.
func TrimBlankLines(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	start := 0
	for i, r := range s {
		if r == '\n' {
			start = i + 1
			continue
		}
		if !unicode.IsSpace(r) {
			return s[start:]
		}
	}
	return ""
}

// SplitFirstLine returns the first line of s and everything after its newline.
func SplitFirstLine(s string) (first, rest string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
