package diagnosis

import "strings"

// PresentationMarker tags the transcript excerpts appended to a biography
const PresentationMarker = "###Apresentacao"

// AppendPresentation appends a tagged transcript to an existing biography. Existing
// content is kept with surrounding whitespace trimmed and separated by a single newline.
func AppendPresentation(existing, transcript string) string {
	bio := strings.TrimSpace(existing)
	if bio != "" {
		bio += "\n"
	}
	return bio + PresentationMarker + "\n" + transcript
}
