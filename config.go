package eligibility

const (
	// DefaultTrees is the ensemble size used when Config.Trees is unset.
	DefaultTrees = 100

	// DefaultSeed fixes bootstrap sampling so that retraining from the same
	// CSV reproduces the same model run after run.
	DefaultSeed = 42
)

// Config holds the training configuration for Train and Evaluate.
type Config struct {
	// Trees is the number of decision trees in the ensemble. If 0, uses DefaultTrees.
	Trees int

	// Seed drives bootstrap sampling and feature-subset draws. If 0, uses DefaultSeed.
	Seed int64

	// MaxDepth bounds individual tree depth. If 0, the forest default applies.
	MaxDepth int

	// MinLeaf is the minimum number of training samples per leaf. If 0, the
	// forest default applies.
	MinLeaf int
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Trees <= 0 {
		c.Trees = DefaultTrees
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
}
