package llm

import (
	"strings"
	"unicode/utf8"
)

// truncateTranscript caps transcript at max characters by discarding
// trailing content at sentence boundaries, so a truncated passage still
// ends in a complete sentence. A hard character cut is the fallback when
// not even one sentence fits.
func truncateTranscript(transcript string, max int) string {
	if max <= 0 || len(transcript) <= max {
		return transcript
	}

	sentences := strings.Split(transcript, ". ")
	var kept []string
	length := 0
	for _, sentence := range sentences {
		// +2 accounts for the ". " separator restored by Join
		if length+len(sentence)+2 > max {
			break
		}
		kept = append(kept, sentence)
		length += len(sentence) + 2
	}

	result := strings.Join(kept, ". ")
	if result == "" {
		// back the hard cut up to a rune boundary; max counts bytes and
		// multi-byte text must stay valid UTF-8 for the model request
		cut := max
		for cut > 0 && !utf8.RuneStart(transcript[cut]) {
			cut--
		}
		return transcript[:cut]
	}
	if !strings.HasSuffix(result, ".") {
		result += "."
	}
	return result
}
