package reconcile

// Config holds the tunables for reconciliation runs.
type Config struct {
	// Threshold is the minimum confidence for a content-similarity
	// match. Pairs below it are treated as deletion plus insertion.
	Threshold float64 `mapstructure:"threshold" default:"0.65"`

	// ReviewThreshold is the confidence below which renames and updates
	// are flagged for explicit human confirmation before being applied.
	ReviewThreshold float64 `mapstructure:"review_threshold" default:"0.85"`
}
