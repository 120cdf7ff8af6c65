package ui

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"React Hooks Deep Dive", 10, "React H..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddleKeepsTail(t *testing.T) {
	got := truncateMiddle("/home/user/.local/state/tubeclone/tubeclone.log", 24)
	if len([]rune(got)) != 24 {
		t.Fatalf("len = %d, want 24 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-len("tubeclone.log"):] != "tubeclone.log" {
		t.Fatalf("truncateMiddle lost the file name: %q", got)
	}
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"  spaced   out  ", 20, []string{"spaced out"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"", 5, nil},
	}
	for _, tc := range cases {
		if got := wrapText(tc.in, tc.width); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("wrapText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestPluralAndPad(t *testing.T) {
	if got := plural(1, "comment"); got != "1 comment" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(0, "comment"); got != "0 comments" {
		t.Fatalf("plural(0) = %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
}
