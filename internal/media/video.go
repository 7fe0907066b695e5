package media

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrVideoFieldsRequired is returned when name, category, or link is blank.
	ErrVideoFieldsRequired = errors.New("name, category, and youtube link are required")
	// ErrInvalidLink is returned when a link does not resolve to a video id.
	ErrInvalidLink = errors.New("link is not a youtube video")
	// ErrVideoNotFound is returned when a video lookup yields no results.
	ErrVideoNotFound = errors.New("video not found")
)

// Video is a saved YouTube track.
type Video struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Link      string    `json:"youtubeLink"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate trims the fields and checks that the link resolves.
func (v *Video) Validate() error {
	v.Name = strings.TrimSpace(v.Name)
	v.Category = strings.TrimSpace(v.Category)
	v.Link = strings.TrimSpace(v.Link)
	if v.Name == "" || v.Category == "" || v.Link == "" {
		return ErrVideoFieldsRequired
	}
	if VideoID(v.Link) == "" {
		return ErrInvalidLink
	}
	return nil
}

// VideoPatch carries optional updates to a Video.
type VideoPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Link     *string `json:"youtubeLink"`
}

// Apply returns a validated copy of v with the patch applied. Blank fields are ignored.
func (p VideoPatch) Apply(v Video) (Video, error) {
	set := func(dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != "" {
			*dst = *src
		}
	}
	set(&v.Name, p.Name)
	set(&v.Category, p.Category)
	set(&v.Link, p.Link)
	if err := v.Validate(); err != nil {
		return Video{}, err
	}
	return v, nil
}

// VideoView adds derived player URLs to a Video.
type VideoView struct {
	Video
	VideoID   string `json:"videoId"`
	EmbedURL  string `json:"embedUrl"`
	Thumbnail string `json:"thumbnailUrl"`
}

// NewVideoView derives the player URLs for v.
func NewVideoView(v Video) VideoView {
	return VideoView{
		Video:     v,
		VideoID:   VideoID(v.Link),
		EmbedURL:  EmbedURL(v.Link, false),
		Thumbnail: ThumbnailURL(v.Link, ThumbMedium),
	}
}
