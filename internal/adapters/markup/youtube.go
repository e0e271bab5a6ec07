package markup

import "regexp"

var youTubeURL = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractYouTubeID finds the 11-character video id in the common YouTube URL
// forms. When none is found the input is returned so it can be used as an id
// directly.
func ExtractYouTubeID(url string) string {
	m := youTubeURL.FindStringSubmatch(url)
	if m != nil && len(m[2]) == 11 {
		return m[2]
	}
	return url
}
