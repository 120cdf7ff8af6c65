package server

import (
	"errors"
	"sync"
	"testing"

	"github.com/five82/tubeclone/internal/catalog"
)

func TestLibrarySearchMatchesTitleDescriptionAndChannel(t *testing.T) {
	lib := NewLibrary()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3", "4", "5"}},
		{"  ", []string{"1", "2", "3", "4", "5"}},
		{"FLASK", []string{"1", "2"}},
		{"normalization", []string{"4"}},
		{"js mastery", []string{"5"}},
		{"nothing-here", nil},
	}
	for _, tt := range tests {
		got := lib.Videos(tt.query)
		if len(got) != len(tt.want) {
			t.Fatalf("Videos(%q) returned %d videos, want %d", tt.query, len(got), len(tt.want))
		}
		for i, v := range got {
			if v.ID != tt.want[i] {
				t.Fatalf("Videos(%q)[%d].ID = %q, want %q", tt.query, i, v.ID, tt.want[i])
			}
		}
	}
}

func TestLibraryAddCommentRejectsBlankContent(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.AddComment("1", " \t", "x"); !errors.Is(err, errContentRequired) {
		t.Fatalf("AddComment error = %v, want errContentRequired", err)
	}
	if n := len(lib.Comments("1")); n != 3 {
		t.Fatalf("comments = %d, want 3", n)
	}
}

func TestLibraryCommentIDsAreGlobal(t *testing.T) {
	lib := NewLibrary()
	a, _ := lib.AddComment("1", "first", "")
	b, _ := lib.AddComment("2", "second", "Bob")
	if a.ID != "c5" || b.ID != "c6" {
		t.Fatalf("ids = %q, %q, want c5, c6", a.ID, b.ID)
	}
	if b.Author != "Bob" {
		t.Fatalf("author = %q, want Bob", b.Author)
	}
}

func TestLibraryUploadSkipsTakenIDs(t *testing.T) {
	lib := NewLibrary()
	lib.videos = append(lib.videos, catalog.Video{ID: "6", Title: "taken"})

	v, err := lib.Upload(catalog.Upload{Title: "new", Channel: "Mine"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if v.ID != "7" {
		t.Fatalf("ID = %q, want 7", v.ID)
	}
	if v.Channel.Name != "Mine" {
		t.Fatalf("channel = %q, want Mine", v.Channel.Name)
	}
	if _, err := lib.Upload(catalog.Upload{}); !errors.Is(err, errTitleRequired) {
		t.Fatalf("Upload error = %v, want errTitleRequired", err)
	}
}

func TestLibraryCommentsAreCopies(t *testing.T) {
	lib := NewLibrary()
	got := lib.Comments("1")
	got[0].Content = "mutated"
	if lib.Comments("1")[0].Content == "mutated" {
		t.Fatal("Comments returned shared storage")
	}
}

func TestLibraryConcurrentWrites(t *testing.T) {
	lib := NewLibrary()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lib.AddComment("3", "hi", ""); err != nil {
				t.Errorf("AddComment: %v", err)
			}
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, c := range lib.Comments("3") {
		if seen[c.ID] {
			t.Fatalf("duplicate comment id %q", c.ID)
		}
		seen[c.ID] = true
	}
	if len(seen) != 20 {
		t.Fatalf("comments = %d, want 20", len(seen))
	}
}
