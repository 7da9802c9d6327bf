package marker

import "testing"

func TestIsRoman(t *testing.T) {
	valid := []string{"I", "II", "III", "IV", "V", "IX", "X", "XIV", "XIX", "XXIV", "XXXIX"}
	for _, s := range valid {
		if !IsRoman(s) {
			t.Errorf("expected %q to be a valid numeral", s)
		}
	}
	invalid := []string{"", "IIII", "VV", "IC", "XL", "L", "C", "XXXX", "iv"}
	for _, s := range invalid {
		if IsRoman(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestRomanHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Chapter IV", true},
		{"  chapter XII: The Storm", true},
		{"Chapter IIII", false},
		{"Chapter Intro", false},
		{"The Chapter IV", true},
		{"see Chapter IIII", false},
	}
	for _, tt := range tests {
		if got := RomanHeading(tt.line); got != tt.want {
			t.Errorf("RomanHeading(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestEndHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Chapter One", true},
		{"CHAPTER twenty", true},
		{"Chapter 12 - Late", true},
		{"Chapter Oneself", false},
		{"Prologue", false},
		{"Then came Chapter 3", true},
	}
	for _, tt := range tests {
		if got := EndHeading(tt.line); got != tt.want {
			t.Errorf("EndHeading(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestCascadeGrammars_MatchLine(t *testing.T) {
	tests := []struct {
		g    Grammar
		line string
		want bool
	}{
		{ChineseDigit, "第12章 风起", true},
		{ChineseDigit, "第12345章", false},
		{ChineseDigit, "第一章", false},
		{ChineseNumeral, "第一百零一章 归来", true},
		{ChineseNumeral, "　　第三章", true},
		{ChineseNumeral, "他读完了第三章", true},
		{EnglishDigit, "Chapter 7", true},
		{EnglishDigit, "chapter12", true},
		{EnglishDigit, "see Chapter 1 below", true},
		{EnglishWord, "Chapter Seventeen", true},
		{EnglishWord, "chapter three: dawn", true},
		{EnglishWord, "Chapter Twentyone", false},
		{EnglishRoman, "Chapter XI", true},
		{NumberedLine, "12. The End", true},
		{NumberedLine, "3：尾声", true},
		{NumberedLine, "4:", true},
		{NumberedLine, "Item 12.", false},
	}
	for _, tt := range tests {
		if got := tt.g.MatchLine(tt.line); got != tt.want {
			t.Errorf("%s.MatchLine(%q): expected %v, got %v", tt.g.Name, tt.line, tt.want, got)
		}
	}
}

func TestGrammar_FindAny(t *testing.T) {
	text := "Preface text\n  Chapter 3\nbody"
	if !EnglishDigit.FindAny(text) {
		t.Error("expected english-digit heading to be found on an indented line")
	}
	if ChineseDigit.FindAny(text) {
		t.Error("expected no chinese-digit heading")
	}
	if !EnglishDigit.FindAny("as told in Chapter 3 earlier") {
		t.Error("expected a mid-line mention to be found")
	}
	if !ChineseDigit.FindAny("引子：这是第1章之前的故事") {
		t.Error("expected a mid-line chinese-digit heading to be found")
	}
	if NumberedLine.FindAny("see item 12. below") {
		t.Error("expected numbered lines to require a line start")
	}
	if !NumberedLine.FindAny("intro\n  12. Twelve") {
		t.Error("expected an indented numbered line to be found")
	}
}

func TestSeparators(t *testing.T) {
	if SplitSeparator != "\n\n==== split chapter ====\n\n" {
		t.Errorf("unexpected split separator %q", SplitSeparator)
	}
	if !HasDashSeparator("a\n---\nb") {
		t.Error("expected dash separator line to be found")
	}
	if HasDashSeparator("a\n----\nb\n---CHAPTER END---") {
		t.Error("expected only an exact --- line to count")
	}
	if !HasEndSentinel("x---CHAPTER END---y") {
		t.Error("expected end sentinel to be found")
	}
	if !MentionsRoman("intro\nChapter IX\n") {
		t.Error("expected roman heading mention")
	}
}
