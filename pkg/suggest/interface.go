// Package suggest answers plain prefix lookups over a lexicon, next to the
// subsequence search done by package enumerate.
package suggest

// ICompleter defines the interface for prefix completion engines
type ICompleter interface {
	// Complete returns up to limit words starting with prefix, in id order
	Complete(prefix string, limit int) []Suggestion

	// Stats returns statistics about the loaded words
	Stats() map[string]int
}
