package reconcile

import (
	"strconv"
	"strings"
	"sync"

	"github.com/five82/tubeclone/internal/catalog"
)

// Thread is the comment list of one video. Comments written here stay in
// the client; they are never sent to the remote API.
type Thread struct {
	mu    sync.Mutex
	items []catalog.Comment
	newID func() string
}

// ThreadOption customises a Thread.
type ThreadOption func(*Thread)

// WithIDGenerator replaces catalog.NewLocalID.
func WithIDGenerator(f func() string) ThreadOption {
	return func(t *Thread) {
		if f != nil {
			t.newID = f
		}
	}
}

// NewThread returns a thread holding a copy of seed.
func NewThread(seed []catalog.Comment, opts ...ThreadOption) *Thread {
	t := &Thread{
		items: catalog.Clone(seed),
		newID: catalog.NewLocalID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Submit prepends a comment by the demo user. Text that is empty after
// trimming is rejected and the thread is left unchanged.
func (t *Thread) Submit(text string) (catalog.Comment, bool) {
	content := strings.TrimSpace(text)
	if content == "" {
		return catalog.Comment{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := catalog.Comment{
		ID:        t.uniqueIDLocked(),
		Author:    catalog.DemoAuthor,
		Avatar:    catalog.DemoAvatar,
		Content:   content,
		Timestamp: "just now",
		Likes:     0,
	}
	items := make([]catalog.Comment, 0, len(t.items)+1)
	items = append(items, c)
	t.items = append(items, t.items...)
	return c, true
}

// maxIDAttempts bounds calls to the id generator before falling back to a
// numeric suffix.
const maxIDAttempts = 8

func (t *Thread) uniqueIDLocked() string {
	taken := make(map[string]bool, len(t.items))
	for _, c := range t.items {
		taken[c.ID] = true
	}
	id := t.newID()
	for i := 1; i < maxIDAttempts && taken[id]; i++ {
		id = t.newID()
	}
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		if candidate := id + "-" + strconv.Itoa(n); !taken[candidate] {
			return candidate
		}
	}
}

// Comments returns a copy of the thread, newest first.
func (t *Thread) Comments() []catalog.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return catalog.Clone(t.items)
}
