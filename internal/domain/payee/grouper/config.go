package grouper

import "fmt"

// Config holds the calibrated thresholds of the grouping pipeline. The
// defaults are behavior-compatibility constants; changing them changes which
// rows merge and which groups auto-accept.
type Config struct {
	// GroupingThreshold is the minimum pairwise similarity for two rows to
	// land in the same group.
	GroupingThreshold float64

	// ExistingMatchThreshold is the minimum matcher score for attaching an
	// existing payee to a group.
	ExistingMatchThreshold float64

	// AutoAcceptThreshold is the confidence above which no human review is
	// required, for both cluster confidence and existing-payee matches.
	AutoAcceptThreshold float64

	// MaxExistingMatches caps how many candidates the matcher ranks.
	MaxExistingMatches int

	// LookupConcurrency bounds how many groups run their matcher and
	// override lookups at once. Lookups stay sequential within a group.
	LookupConcurrency int
}

// DefaultConfig returns the calibrated production defaults.
func DefaultConfig() Config {
	return Config{
		GroupingThreshold:      0.8,
		ExistingMatchThreshold: 0.7,
		AutoAcceptThreshold:    0.95,
		MaxExistingMatches:     5,
		LookupConcurrency:      4,
	}
}

// Validate rejects inconsistent threshold configuration at construction
// time so a bad setup never surfaces mid-batch.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"grouping threshold":       c.GroupingThreshold,
		"existing match threshold": c.ExistingMatchThreshold,
		"auto accept threshold":    c.AutoAcceptThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %v out of range [0,1]", name, v)
		}
	}
	if c.AutoAcceptThreshold < c.ExistingMatchThreshold {
		return fmt.Errorf("auto accept threshold %v below existing match threshold %v",
			c.AutoAcceptThreshold, c.ExistingMatchThreshold)
	}
	if c.MaxExistingMatches < 1 {
		return fmt.Errorf("max existing matches must be at least 1, got %d", c.MaxExistingMatches)
	}
	if c.LookupConcurrency < 1 {
		return fmt.Errorf("lookup concurrency must be at least 1, got %d", c.LookupConcurrency)
	}
	return nil
}
