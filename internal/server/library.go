package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/five82/tubeclone/internal/catalog"
)

var (
	errContentRequired = errors.New("comment content is required")
	errTitleRequired   = errors.New("video title is required")
)

const (
	defaultCommentAuthor = "Anonymous"
	defaultUploadChannel = "Your Channel"
	uploadSubscribers    = "1K"
	placeholderThumbnail = "/placeholder.svg?height=180&width=320"
	placeholderChannel   = "/placeholder.svg?height=40&width=40"
	placeholderComment   = "/placeholder.svg?height=32&width=32"
)

// Library is the in-memory store behind the demo API. It lives only as long
// as the process.
type Library struct {
	mu          sync.RWMutex
	videos      []catalog.Video
	comments    map[string][]catalog.Comment
	nextComment int
}

// NewLibrary returns a library seeded with the demo catalog.
func NewLibrary() *Library {
	comments := catalog.LibraryComments()
	total := 0
	for _, c := range comments {
		total += len(c)
	}
	return &Library{
		videos:      catalog.Library(),
		comments:    comments,
		nextComment: total + 1,
	}
}

// Videos returns every video, or those whose title, description or channel
// name contains search.
func (l *Library) Videos(search string) []catalog.Video {
	l.mu.RLock()
	defer l.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]catalog.Video, 0, len(l.videos))
	for _, v := range l.videos {
		if q == "" ||
			strings.Contains(strings.ToLower(v.Title), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strings.ToLower(v.Channel.Name), q) {
			out = append(out, v)
		}
	}
	return out
}

// Video looks up a video by id.
func (l *Library) Video(id string) (catalog.Video, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, v := range l.videos {
		if v.ID == id {
			return v, true
		}
	}
	return catalog.Video{}, false
}

// Comments returns the comments of a video, oldest first. Unknown videos
// have no comments.
func (l *Library) Comments(videoID string) []catalog.Comment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return catalog.Clone(l.comments[videoID])
}

// AddComment appends a comment to a video's thread.
func (l *Library) AddComment(videoID, content, author string) (catalog.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return catalog.Comment{}, errContentRequired
	}
	if strings.TrimSpace(author) == "" {
		author = defaultCommentAuthor
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := catalog.Comment{
		ID:        fmt.Sprintf("c%d", l.nextComment),
		Author:    author,
		Avatar:    placeholderComment,
		Content:   content,
		Timestamp: "just now",
		Likes:     0,
	}
	l.nextComment++
	l.comments[videoID] = append(l.comments[videoID], c)
	return c, nil
}

// Upload stores a new video and returns it.
func (l *Library) Upload(req catalog.Upload) (catalog.Video, error) {
	if strings.TrimSpace(req.Title) == "" {
		return catalog.Video{}, errTitleRequired
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = defaultUploadChannel
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v := catalog.Video{
		ID:          l.nextVideoIDLocked(),
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   placeholderThumbnail,
		Duration:    "0:00",
		Views:       "0",
		UploadDate:  "just now",
		Channel:     catalog.Channel{Name: channel, Avatar: placeholderChannel, Subscribers: uploadSubscribers},
		VideoURL:    req.VideoURL,
	}
	l.videos = append(l.videos, v)
	return v, nil
}

func (l *Library) nextVideoIDLocked() string {
	n := len(l.videos) + 1
	for {
		id := strconv.Itoa(n)
		taken := false
		for _, v := range l.videos {
			if v.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		n++
	}
}
