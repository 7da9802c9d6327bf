package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/chapterize/internal/doctree"
	"github.com/dgallion1/chapterize/internal/marker"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser handles HTML and XHTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	if title := findTitle(doc); title != "" {
		tree.Title = title
	}

	b := newTreeBuilder()
	walkHTML(contentRoot(doc), b)
	b.finish(tree)
	return tree, nil
}

// walkHTML feeds headings and text blocks of n into b.
func walkHTML(n *html.Node, b *treeBuilder) {
	if n.Type == html.ElementNode {
		if level := headingLevel(n.DataAtom); level > 0 {
			b.heading(level, textContent(n))
			return
		}
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Nav, atom.Footer, atom.Header:
			return
		case atom.Hr:
			b.paragraph(marker.DashSeparator)
			return
		case atom.P, atom.Li, atom.Td, atom.Blockquote, atom.Pre:
			b.paragraph(textContent(n))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, b)
	}
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// textContent concatenates descendant text, turning <br> into newlines.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// contentRoot returns <body>, or the document itself when there is none.
func contentRoot(doc *html.Node) *html.Node {
	if body := findBody(doc); body != nil {
		return body
	}
	return doc
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
