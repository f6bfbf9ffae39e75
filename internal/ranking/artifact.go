package ranking

import "strings"

// ArtifactID derives the stable, URL-safe identifier under which the
// department-specific annotated rendering of a document is materialized by
// the artifact collaborator. The transform is deterministic: lowercase,
// runs of non-alphanumeric characters collapsed to single hyphens.
// Distinct catalog labels must yield distinct identifiers; configuration
// validation enforces that at startup.
func ArtifactID(label string) string {
	var sb strings.Builder
	sb.Grow(len(label))

	lastHyphen := true
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
