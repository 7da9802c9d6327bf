package chapter

import "testing"

func TestTrimBlankLines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   \n\t\n", ""},
		{"abc\n\n", "abc"},
		{"\n\ndef", "def"},
		{"\n\n  indented\nnext  \n\n", "  indented\nnext"},
		{"　　第一段\n", "　　第一段"},
	}
	for _, tt := range tests {
		if got := TrimBlankLines(tt.in); got != tt.want {
			t.Errorf("TrimBlankLines(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSplitFirstLine(t *testing.T) {
	first, rest := SplitFirstLine("title\nline one\nline two")
	if first != "title" {
		t.Errorf("expected first %q, got %q", "title", first)
	}
	if rest != "line one\nline two" {
		t.Errorf("expected rest %q, got %q", "line one\nline two", rest)
	}

	first, rest = SplitFirstLine("only")
	if first != "only" || rest != "" {
		t.Errorf("expected (%q, %q), got (%q, %q)", "only", "", first, rest)
	}
}

func TestNew_NormalizesTitleAndContent(t *testing.T) {
	c := New("  Chapter 1  ", "\n\nbody\n\n")
	if c.Title != "Chapter 1" {
		t.Errorf("expected title %q, got %q", "Chapter 1", c.Title)
	}
	if c.Content != "body" {
		t.Errorf("expected content %q, got %q", "body", c.Content)
	}
}

func TestList_CloneIsIndependent(t *testing.T) {
	orig := List{{Title: "a", Content: "1"}, {Title: "b", Content: "2"}}
	cp := orig.Clone()
	cp[0].Title = "changed"
	if orig[0].Title != "a" {
		t.Errorf("expected original title to stay %q, got %q", "a", orig[0].Title)
	}
	if List(nil).Clone() != nil {
		t.Error("expected nil clone of nil list")
	}
}

func TestList_Equal(t *testing.T) {
	a := List{{Title: "a", Content: "1"}}
	if !a.Equal(List{{Title: "a", Content: "1"}}) {
		t.Error("expected equal lists")
	}
	if a.Equal(List{{Title: "a", Content: "2"}}) {
		t.Error("expected lists with different content to differ")
	}
	if a.Equal(nil) {
		t.Error("expected lists of different length to differ")
	}
}

func TestList_Render(t *testing.T) {
	l := List{{Title: "One", Content: "alpha"}, {Title: "Two"}}
	want := "One\n\nalpha\n\nTwo"
	if got := l.Render(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := l.Titles(); len(got) != 2 || got[1] != "Two" {
		t.Errorf("expected titles [One Two], got %v", got)
	}
}
