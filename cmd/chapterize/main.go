package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/chapterize/internal/chapter"
	"github.com/dgallion1/chapterize/internal/parser"
	"github.com/dgallion1/chapterize/internal/segment"
)

const previewLen = 60

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Width(5).
			Align(lipgloss.Right)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

type result struct {
	Title    string       `json:"title"`
	Strategy string       `json:"strategy"`
	Chapters chapter.List `json:"chapters"`
}

func main() {
	list := flag.Bool("list", false, "Print a styled chapter listing instead of JSON")
	strategyOnly := flag.Bool("strategy", false, "Print only the detected segmentation strategy")
	encoding := flag.String("encoding", parser.DefaultFallbackEncoding, "Fallback encoding for non-UTF-8 text")
	pdftotext := flag.Bool("pdftotext", true, "Fall back to pdftotext for unreadable PDFs")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chapterize [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Splits a manuscript into chapters. Reads plain text from stdin when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := parser.Options{
		FallbackEncoding:     *encoding,
		PDFFallbackPdftotext: *pdftotext,
	}
	res, err := run(flag.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chapterize: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *strategyOnly:
		fmt.Println(res.Strategy)
	case *list:
		fmt.Print(render(res))
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "chapterize: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(filename string, opts parser.Options) (result, error) {
	var (
		r    io.Reader = os.Stdin
		name           = "stdin.txt"
	)
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return result{}, err
		}
		defer f.Close()
		r, name = f, filename
	}

	tree, err := parser.Decode(r, name, opts)
	if err != nil {
		return result{}, fmt.Errorf("decode %s: %w", name, err)
	}
	chapters, strategy := segment.Analyze(tree.PlainText())
	return result{Title: tree.Title, Strategy: strategy, Chapters: chapters}, nil
}

func render(res result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s: %d chapters (%s)", res.Title, len(res.Chapters), res.Strategy)))
	b.WriteString("\n\n")
	for i, c := range res.Chapters {
		b.WriteString(indexStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(titleStyle.Render(c.Title))
		b.WriteString("\n")
		if p := preview(c.Content); p != "" {
			b.WriteString("      ")
			b.WriteString(previewStyle.Render(p))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func preview(content string) string {
	first, _ := chapter.SplitFirstLine(strings.TrimSpace(content))
	runes := []rune(first)
	if len(runes) > previewLen {
		return string(runes[:previewLen]) + "..."
	}
	return first
}
