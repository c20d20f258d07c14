// internal/textnorm/textnorm.go
// Package textnorm canonicalizes free text for matching and derives the fixed
// width prefix keys used to partition the search index into shard files.
// PrefixKey must stay bit-exact with the dataset builder: any drift makes
// every index lookup miss silently.
package textnorm

import "strings"

// Normalize lowercases the input, replaces every character outside
// [a-z0-9\s] with a space, collapses whitespace runs, and trims. It is
// idempotent. This is matching canonicalization only; HTML escaping is the
// renderer's job and must never be conflated with it.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Keywords splits a normalized query into its non-empty terms.
func Keywords(normalized string) []string {
	return strings.Fields(normalized)
}

// PrefixKey maps a token to its index shard key of the requested length
// (2 for the primary tier, 3 for the nested overflow tier). The token is
// normalized and stripped of whitespace first. Empty tokens map to a
// placeholder of repeated underscores; short tokens are right-padded with
// underscores.
func PrefixKey(token string, length int) string {
	n := strings.ReplaceAll(Normalize(token), " ", "")
	if n == "" {
		return strings.Repeat("_", length)
	}
	if len(n) < length {
		return n + strings.Repeat("_", length-len(n))
	}
	return n[:length]
}
