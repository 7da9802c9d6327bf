package session

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultTitleMaxLen is the grapheme limit for titles derived during a split.
const DefaultTitleMaxLen = 50

const ellipsis = "..."

// truncateTitle shortens line to at most maxLen grapheme clusters plus an
// ellipsis. A cut lands on the last space within the first maxLen+1 clusters
// when that space sits at or past 70% of maxLen, so words are not broken in half.
func truncateTitle(line string, maxLen int) (string, bool) {
	if maxLen <= 0 {
		maxLen = DefaultTitleMaxLen
	}
	if uniseg.GraphemeClusterCount(line) <= maxLen {
		return line, false
	}

	cut, space, spaceAt, n := 0, -1, -1, 0
	g := uniseg.NewGraphemes(line)
	for n <= maxLen && g.Next() {
		start, end := g.Positions()
		if strings.TrimSpace(g.Str()) == "" {
			space, spaceAt = start, n
		}
		if n < maxLen {
			cut = end
		}
		n++
	}
	if space > 0 && spaceAt*10 >= maxLen*7 {
		cut = space
	}
	return strings.TrimRight(line[:cut], " \t") + ellipsis, true
}
