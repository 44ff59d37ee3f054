package export

import "strings"

// bioPlaceholder is what the submission form inserts when a speaker leaves
// the per-proposal bio blank.
const bioPlaceholder = "N/A"

// NormalizeBio picks the per-proposal bio override when it is non-empty and
// not the form placeholder, falling back to the person's profile bio.
// Line terminators are normalized and surrounding whitespace is trimmed.
func NormalizeBio(override, base string) string {
	bio := base
	if override != "" && override != bioPlaceholder {
		bio = override
	}
	bio = strings.ReplaceAll(bio, "\r\n", "\n")
	return strings.TrimSpace(bio)
}

// NormalizeAbstract normalizes line terminators and drops a single trailing
// newline. Unlike bios, abstracts keep leading whitespace: it can be
// meaningful formatting.
func NormalizeAbstract(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSuffix(text, "\n")
}
