package llm

import (
	"regexp"
	"strings"
)

const (
	tagMarker = "#"
	tagCount  = 3
)

// defaultTags pad the tag line, cycled in order, when the model produced
// fewer than three usable tags.
var defaultTags = []string{"#shorts", "#video", "#daily"}

var tagJunk = regexp.MustCompile(`[^#\p{L}\p{N}]`)

// normalizeTags turns whatever line-delimited text the model returned into
// exactly three well-formed hashtags.
func normalizeTags(raw string) []string {
	var tags []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*• \t")
		if !strings.HasPrefix(line, tagMarker) {
			continue
		}

		tag := tagJunk.ReplaceAllString(line, "")
		if strings.Trim(tag, tagMarker) == "" {
			continue
		}

		tags = append(tags, tag)
		if len(tags) == tagCount {
			break
		}
	}

	for i := 0; len(tags) < tagCount; i++ {
		tags = append(tags, defaultTags[i%len(defaultTags)])
	}

	return tags
}
