package enhancer

import (
	"strings"
	"unicode"
)

// Prefixes the model tends to prepend despite being told not to.
// Matched case-insensitively; one match is stripped per pass.
var captionPrefixes = []string{
	"caption:", "caption is:", "the caption:", "description:",
	"image caption:", "a simple caption:",
	"ml-style caption:", "resnet50 caption:",
}

// Markers that introduce an explanation after the caption proper. Checked in
// order; the text is truncated at the first occurrence of the first marker
// type found.
var explanationMarkers = []string{
	" - ", " because ", " since ", " as ", " (", " [", "\n",
}

const maxCaptionWords = 18

// cleanupCaption normalizes a model response into the terse lowercase shape
// a classical captioning model would produce: strips quotes and boilerplate
// prefixes, drops trailing explanations, lowercases the leading character of
// short captions, and caps the word count. Empty input is returned unchanged.
//
// The pass repeats until the text stops changing, because one step can expose
// work for another (stripping a prefix can uncover a quoted remainder). The
// result is therefore always a fixed point of the function.
func cleanupCaption(caption string) string {
	for {
		cleaned := cleanupPass(caption)
		if cleaned == caption {
			return cleaned
		}
		caption = cleaned
	}
}

func cleanupPass(caption string) string {
	if caption == "" {
		return caption
	}

	caption = strings.TrimSpace(caption)
	caption = strings.Trim(caption, `"`)
	caption = strings.Trim(caption, `'`)
	caption = strings.TrimSpace(caption)

	lower := strings.ToLower(caption)
	for _, prefix := range captionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			caption = strings.TrimSpace(caption[len(prefix):])
			break
		}
	}

	for _, marker := range explanationMarkers {
		if idx := strings.Index(caption, marker); idx >= 0 {
			caption = strings.TrimSpace(caption[:idx])
			break
		}
	}

	if runes := []rune(caption); len(runes) > 0 &&
		unicode.IsUpper(runes[0]) &&
		len(strings.Fields(caption)) <= 15 {
		runes[0] = unicode.ToLower(runes[0])
		caption = string(runes)
	}

	if words := strings.Fields(caption); len(words) > maxCaptionWords {
		caption = strings.Join(words[:maxCaptionWords], " ")
	}

	return strings.TrimSpace(caption)
}
