package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/chapterize/internal/doctree"
)

// TextParser handles plain text files. The text is kept verbatim in a single
// node so that heading detection sees the original line structure.
type TextParser struct {
	FallbackEncoding string
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	text, err := decodeText(data, p.FallbackEncoding)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{
		Title: baseTitle(filename),
	}
	if strings.TrimSpace(text) != "" {
		tree.Children = []*doctree.DocNode{{Text: text}}
	}
	return tree, nil
}
