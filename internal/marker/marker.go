// Package marker holds the heading grammars and separator tokens recognized
// when segmenting a manuscript into chapters.
package marker

import (
	"regexp"
	"strings"
)

// Separator vocabulary. These strings are part of the on-text format and
// must stay byte-exact.
const (
	// SplitSentinel marks a staged split point inside a chapter's content.
	SplitSentinel = "==== split chapter ===="
	// SplitSeparator is what gets inserted at the cursor when staging a split.
	SplitSeparator = "\n\n" + SplitSentinel + "\n\n"
	// EndSentinel terminates a chapter in end-marked manuscripts.
	EndSentinel = "---CHAPTER END---"
	// DashSeparator is a line that separates roman-numbered chapters.
	DashSeparator = "---"
)

// NumberWords are the spelled-out chapter numbers recognized after "Chapter".
var NumberWords = []string{
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
	"eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
}

var numberWordAlt = strings.Join(NumberWords, "|")

// Grammar is a named heading pattern. Line is matched against a single
// trimmed line; a match anywhere in the line makes it a heading unless the
// grammar is anchored at line start.
type Grammar struct {
	Name string
	Line *regexp.Regexp
	any  *regexp.Regexp
}

func newGrammar(name, expr string) Grammar {
	re := regexp.MustCompile(expr)
	return Grammar{Name: name, Line: re, any: re}
}

// newLineStartGrammar builds a grammar that only matches at the start of a line.
func newLineStartGrammar(name, expr string) Grammar {
	return Grammar{
		Name: name,
		Line: regexp.MustCompile(`^` + expr),
		any:  regexp.MustCompile(`(?m)^[ \t\p{Zs}]*` + expr),
	}
}

// MatchLine reports whether line, once trimmed, is a heading of this grammar.
func (g Grammar) MatchLine(line string) bool {
	return g.Line.MatchString(strings.TrimSpace(line))
}

// FindAny reports whether this heading occurs anywhere in text.
func (g Grammar) FindAny(text string) bool {
	return g.any.MatchString(text)
}

// Heading grammars, in the order the cascade tries them.
var (
	ChineseDigit   = newGrammar("chinese-digit", `第[0-9]{1,4}章`)
	ChineseNumeral = newGrammar("chinese-numeral", `第[一二三四五六七八九十百千万零〇两]+章`)
	EnglishDigit   = newGrammar("english-digit", `(?i:chapter)\s*[0-9]{1,4}`)
	EnglishWord    = newGrammar("english-word", `(?i:chapter\s+(?:`+numberWordAlt+`))\b`)
	EnglishRoman   = newGrammar("english-roman", `(?i:chapter)\s+[IVXLC]+\b`)
	NumberedLine   = newLineStartGrammar("numbered-line", `[0-9]+[.:：]`)
)

// Cascade lists the grammars tried by the default segmentation strategy.
var Cascade = []Grammar{
	ChineseDigit,
	ChineseNumeral,
	EnglishDigit,
	EnglishWord,
	EnglishRoman,
	NumberedLine,
}

var (
	romanHeading   = regexp.MustCompile(`(?i:chapter)\s+([IVXLC]+)\b`)
	romanMention   = regexp.MustCompile(`Chapter\s+[IVXLC]+\b`)
	strictRoman    = regexp.MustCompile(`^X{0,3}(?:IX|IV|V?I{0,3})$`)
	endHeading     = regexp.MustCompile(`(?i:chapter\s+(?:` + numberWordAlt + `|[0-9]+))\b`)
	dashSeparators = regexp.MustCompile(`(?m)^` + DashSeparator + `$`)
)

// IsRoman reports whether s is a roman numeral between I and XXXIX.
func IsRoman(s string) bool {
	return s != "" && strictRoman.MatchString(s)
}

// RomanHeading reports whether line holds "Chapter <roman>" with a valid numeral.
func RomanHeading(line string) bool {
	m := romanHeading.FindStringSubmatch(strings.TrimSpace(line))
	return m != nil && IsRoman(m[1])
}

// MentionsRoman reports whether text contains a "Chapter <roman>" heading anywhere.
func MentionsRoman(text string) bool {
	return romanMention.MatchString(text)
}

// EndHeading reports whether line holds "Chapter <number word or digits>".
func EndHeading(line string) bool {
	return endHeading.MatchString(strings.TrimSpace(line))
}

// HasDashSeparator reports whether text has a line consisting of exactly "---".
func HasDashSeparator(text string) bool {
	return dashSeparators.MatchString(text)
}

// HasEndSentinel reports whether text contains the end-of-chapter sentinel.
func HasEndSentinel(text string) bool {
	return strings.Contains(text, EndSentinel)
}

// HasSplitSentinel reports whether text contains a staged split marker.
func HasSplitSentinel(text string) bool {
	return strings.Contains(text, SplitSentinel)
}

// IsDashSeparator reports whether line is a dash separator line.
func IsDashSeparator(line string) bool {
	return line == DashSeparator
}
