package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/chapterize/internal/doctree"
	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBParser reads spine documents in reading order and walks each one
// as HTML.
type EPUBParser struct{}

func (p *EPUBParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	path, _, cleanup, err := spool(r, "chapterize-epub-*.epub")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	b := newTreeBuilder()
	for i, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		if err := walkSpineItem(ref.Item, b); err != nil {
			return nil, fmt.Errorf("spine item %d: %w", i, err)
		}
	}
	b.finish(tree)
	return tree, nil
}

func walkSpineItem(item *epub.Item, b *treeBuilder) error {
	f, err := item.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return err
	}
	walkHTML(contentRoot(doc), b)
	return nil
}
