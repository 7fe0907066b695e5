// Package media handles YouTube ambience tracks and the equalizer that mixes
// several of them at once.
package media

import (
	"net/url"
	"strings"
)

// VideoID extracts the YouTube video id from a watch or short link.
// It returns "" for anything it cannot resolve.
func VideoID(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	switch host := strings.ToLower(u.Hostname()); {
	case strings.Contains(host, "youtube.com"):
		return u.Query().Get("v")
	case strings.Contains(host, "youtu.be"):
		return strings.TrimPrefix(u.Path, "/")
	default:
		return ""
	}
}

// EmbedURL returns the iframe URL for link with the JS API enabled, or "" when
// the link has no video id.
func EmbedURL(link string, autoplay bool) string {
	id := VideoID(link)
	if id == "" {
		return ""
	}
	q := url.Values{}
	q.Set("enablejsapi", "1")
	if autoplay {
		q.Set("autoplay", "1")
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id) + "?" + q.Encode()
}

// ThumbnailQuality selects a thumbnail rendition.
type ThumbnailQuality string

const (
	ThumbDefault ThumbnailQuality = "default"
	ThumbHigh    ThumbnailQuality = "hq"
	ThumbMedium  ThumbnailQuality = "mq"
	ThumbSD      ThumbnailQuality = "sd"
	ThumbMaxRes  ThumbnailQuality = "maxres"
)

var thumbFiles = map[ThumbnailQuality]string{
	ThumbDefault: "default",
	ThumbHigh:    "hqdefault",
	ThumbMedium:  "mqdefault",
	ThumbSD:      "sddefault",
	ThumbMaxRes:  "maxresdefault",
}

// ThumbnailURL returns the still image URL for link. Unknown qualities fall
// back to ThumbMedium. Returns "" when the link has no video id.
func ThumbnailURL(link string, q ThumbnailQuality) string {
	id := VideoID(link)
	if id == "" {
		return ""
	}
	file, ok := thumbFiles[q]
	if !ok {
		file = thumbFiles[ThumbMedium]
	}
	return "https://img.youtube.com/vi/" + url.PathEscape(id) + "/" + file + ".jpg"
}
