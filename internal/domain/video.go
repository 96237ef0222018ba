package domain

import (
	"fmt"
	"regexp"
)

var youtubeIDRegex = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
)

// ExtractVideoID returns the 11-character YouTube video ID found in url, or
// an empty string when url is not a recognised YouTube link.
func ExtractVideoID(url string) string {
	if url == "" {
		return ""
	}
	m := youtubeIDRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ThumbnailURL returns the medium-quality thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", videoID)
}
