package catalog

import (
	"fmt"
	"strings"
)

// Record is an item of a collection shown by a view.
type Record interface {
	// Key returns the id, unique within the record's collection.
	Key() string
	// SearchFields returns the display fields a search query is tested against.
	SearchFields() []string
}

// Channel identifies the publisher of a video.
type Channel struct {
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	Subscribers string `json:"subscribers,omitempty"`
}

// Video is a playable entry in the feed. Views and UploadDate are display
// strings ("125K", "2 days ago") and are never parsed.
type Video struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Views       string  `json:"views"`
	UploadDate  string  `json:"uploadDate"`
	Channel     Channel `json:"channel"`
	VideoURL    string  `json:"videoUrl,omitempty"`
}

// Key implements Record.
func (v Video) Key() string { return v.ID }

// SearchFields implements Record.
func (v Video) SearchFields() []string { return []string{v.Title, v.Channel.Name} }

// HasMedia reports whether the video carries a playable media reference.
func (v Video) HasMedia() bool { return strings.TrimSpace(v.VideoURL) != "" }

// Validate checks the fields every view relies on.
func (v Video) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("video id is empty")
	}
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("video %s has no title", v.ID)
	}
	return nil
}

// Comment is a viewer comment on a video.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Avatar    string `json:"avatar,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
}

// Key implements Record.
func (c Comment) Key() string { return c.ID }

// SearchFields implements Record.
func (c Comment) SearchFields() []string { return []string{c.Content, c.Author} }

// Validate checks the fields every view relies on.
func (c Comment) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("comment id is empty")
	}
	if c.Likes < 0 {
		return fmt.Errorf("comment %s has negative likes", c.ID)
	}
	return nil
}

// Upload is the payload sent to create a video.
type Upload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Channel     string `json:"channel"`
}
