package sanitize

import (
	"strings"
	"testing"
)

func TestTextHyphenationJoin(t *testing.T) {
	lines := []string{
		"Lorem ipsum sadipscing elitr, sed diam nonumy eir-",
		"mod tempor invidunt ut labore",
	}
	got := Text(lines)
	if !strings.Contains(got, "eirmod tempor") {
		t.Fatalf("expected joined hyphenation, got %q", got)
	}
	if !strings.HasPrefix(got, "Lorem ipsum") {
		t.Fatalf("expected prefix %q, got %q", "Lorem ipsum", got)
	}
}

func TestTextSingleLine(t *testing.T) {
	got := Text([]string{"Attention Is All You Need"})
	if got != "Attention Is All You Need" {
		t.Fatalf("got %q", got)
	}
}

func TestTextEmpty(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestTextIdempotent(t *testing.T) {
	lines := []string{"The quick brown fox , jumps over the lazy dog ."}
	once := Text(lines)
	twice := Text([]string{once})
	if once != twice {
		t.Fatalf("sanitize not idempotent: %q != %q", once, twice)
	}
}

func TestTextDashNotJoinedWhenWhitespaceSeparated(t *testing.T) {
	lines := []string{"the result was positive -", "confirmed by later trials"}
	got := Text(lines)
	if strings.Contains(got, "positive-confirmed") {
		t.Fatalf("unexpected join across whitespace-separated dash: %q", got)
	}
}

func TestUnicodeReplacements(t *testing.T) {
	got := Text([]string{"It’s a “test” – really"})
	if strings.ContainsAny(got, "’“”–") {
		t.Fatalf("unicode punctuation not normalized: %q", got)
	}
}

func TestCompoundHyphenFix(t *testing.T) {
	got := normalizePunctuationSpacing("mid - 19th century")
	if !strings.Contains(got, "mid-19th") {
		t.Fatalf("expected compound hyphen join, got %q", got)
	}
}

func TestCompoundHyphenKeepsCellSpace(t *testing.T) {
	got := normalizePunctuationSpacing("cell - phone")
	if !strings.Contains(got, "cell - phone") {
		t.Fatalf("expected cell exception to keep spacing, got %q", got)
	}
}

func TestWordBreakFix(t *testing.T) {
	got := normalizePunctuationSpacing("a professi onal setting")
	if !strings.Contains(got, "professional") {
		t.Fatalf("expected word-break join, got %q", got)
	}
}

func TestORCIDNormalize(t *testing.T) {
	got := normalizePunctuationSpacing("Author[0000-0002-1825-0097],")
	if !strings.Contains(got, "[0000 -0002 -1825 -0097] ,") {
		t.Fatalf("expected ORCID reformat, got %q", got)
	}
}
