package models

import "time"

// FileOutcome records what happened to a single file during a repair run.
type FileOutcome struct {
	Path             string
	Diagnostics      int
	Patched          int
	ExtractionSkips  int
	PatchMisses      int
	RewriteFallbacks int
	CacheHits        int
	SkippedByFilter  bool
	SkippedMissing   bool
	Persisted        bool
	Fixed            bool
	TestFile         string
	TestRan          bool
	TestPassed       bool
}

// RunReport aggregates one repair run.
type RunReport struct {
	Diagnostics    int
	Files          []FileOutcome
	FixedFiles     int
	RemainingFiles int
	Duration       time.Duration
}
