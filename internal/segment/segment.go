// Package segment derives the initial chapter list of a manuscript.
//
// Segmentation is a cascade of strategies evaluated in a fixed order; the
// first strategy that applies to the text produces the chapters. It never
// fails: text without any recognizable structure becomes a single chapter.
package segment

import (
	"strings"

	"github.com/dgallion1/chapterize/internal/chapter"
	"github.com/dgallion1/chapterize/internal/marker"
)

// Strategy is one entry of the segmentation cascade.
type Strategy struct {
	Name    string
	Applies func(text string) bool
	Split   func(text string) chapter.List
}

// Strategies is the ordered cascade. The default heading cascade always
// applies, so evaluation ends there at the latest.
var Strategies = []Strategy{
	{Name: "dash", Applies: appliesDash, Split: splitDash},
	{Name: "end-marker", Applies: marker.HasEndSentinel, Split: splitEndMarker},
	{Name: "cascade", Applies: func(string) bool { return true }, Split: splitCascade},
}

// Segment splits text into chapters. The result is never empty and never
// contains a chapter with an empty title.
func Segment(text string) chapter.List {
	chapters, _ := Analyze(text)
	return chapters
}

// Detect names the strategy Segment would use for text.
func Detect(text string) string {
	_, name := Analyze(text)
	return name
}

// Analyze segments text and names the strategy that produced the result:
// "dash", "end-marker", "cascade:<grammar>" or "whole".
func Analyze(text string) (chapter.List, string) {
	text = normalizeNewlines(text)
	for _, s := range Strategies {
		if !s.Applies(text) {
			continue
		}
		chapters := s.Split(text)
		if len(chapters) == 0 {
			break
		}
		if s.Name == "cascade" {
			g, _ := selectGrammar(text)
			return chapters, s.Name + ":" + g.Name
		}
		return chapters, s.Name
	}
	return Whole(text), "whole"
}

// Whole collapses text into a single chapter titled by its first line.
// A blank first line falls back to the full-text placeholder.
func Whole(text string) chapter.List {
	text = normalizeNewlines(text)
	first, rest := chapter.SplitFirstLine(text)
	if strings.TrimSpace(first) == "" {
		return chapter.List{chapter.New(chapter.FullTextTitle, text)}
	}
	return chapter.List{chapter.New(first, rest)}
}

func appliesDash(text string) bool {
	return marker.HasDashSeparator(text) && marker.MentionsRoman(text)
}

// splitDash handles manuscripts whose roman-numbered chapters are separated
// by "---" lines. Blocks without a heading belong to the chapter before them.
func splitDash(text string) chapter.List {
	var chapters chapter.List
	for _, block := range dashBlocks(text) {
		block = chapter.TrimBlankLines(block)
		if block == "" {
			continue
		}
		first, rest := chapter.SplitFirstLine(block)
		switch {
		case marker.RomanHeading(first):
			chapters = append(chapters, chapter.New(first, rest))
		case len(chapters) > 0:
			last := chapters[len(chapters)-1]
			chapters[len(chapters)-1] = chapter.New(last.Title, last.Content+"\n"+strings.TrimSpace(block))
		default:
			chapters = append(chapters, chapter.New(chapter.UnnamedTitle, block))
		}
	}
	return chapters
}

func dashBlocks(text string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if marker.IsDashSeparator(line) {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	return append(blocks, strings.Join(current, "\n"))
}

// splitEndMarker handles manuscripts where every chapter is closed by the
// end sentinel.
func splitEndMarker(text string) chapter.List {
	var chapters chapter.List
	for _, block := range strings.Split(text, marker.EndSentinel) {
		block = chapter.TrimBlankLines(block)
		if block == "" {
			continue
		}
		first, rest := chapter.SplitFirstLine(block)
		if marker.EndHeading(first) {
			chapters = append(chapters, chapter.New(first, rest))
		} else {
			chapters = append(chapters, chapter.New(chapter.UnnamedTitle, block))
		}
	}
	return chapters
}

// selectGrammar returns the first cascade grammar found anywhere in text.
func selectGrammar(text string) (marker.Grammar, bool) {
	for _, g := range marker.Cascade {
		if g.FindAny(text) {
			return g, true
		}
	}
	return marker.Grammar{}, false
}

// splitCascade scans line by line with the selected heading grammar. Text
// before the first heading becomes a preface when it holds anything.
func splitCascade(text string) chapter.List {
	g, ok := selectGrammar(text)
	if !ok {
		return nil
	}

	var (
		chapters chapter.List
		title    string
		body     strings.Builder
	)
	flush := func() {
		if title != "" {
			chapters = append(chapters, chapter.New(title, body.String()))
		} else if content := chapter.TrimBlankLines(body.String()); content != "" {
			chapters = append(chapters, chapter.New(chapter.PrefaceTitle, content))
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if g.MatchLine(line) {
			flush()
			title = strings.TrimSpace(line)
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	if title == "" {
		// Only a preface was collected; no chapter ever began.
		return nil
	}
	return chapters
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
