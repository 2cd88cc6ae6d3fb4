package models

// RewriteResult is the typed outcome of one block rewrite attempt. On any
// failure Code carries the original block unchanged, Fallback is true, and
// Err records the cause; rewrite failure is never fatal to a run.
type RewriteResult struct {
	Code        string
	Explanation string
	FromCache   bool
	Fallback    bool
	Err         error
}
