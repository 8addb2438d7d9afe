package trainer

import (
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/difficulty"
)

// ActiveConfig is the generation setup every turn starts from. A published
// value is never modified; a level change publishes a new one.
type ActiveConfig struct {
	Level        domain.Level
	Descriptor   domain.Descriptor
	Bundle       domain.ConstraintBundle
	Instructions string
	// Version is the stored fact version the config was built from.
	Version int64
	// Degraded is set when the level could not be read from storage.
	Degraded    bool
	PublishedAt time.Time
}

func newActiveConfig(fact domain.DifficultyFact, degraded bool, now time.Time) (*ActiveConfig, bool) {
	bundle, fellBack := difficulty.BundleOrDefault(fact.Value)
	return &ActiveConfig{
		Level:        bundle.Level,
		Descriptor:   bundle.Level.Descriptor(),
		Bundle:       bundle,
		Instructions: difficulty.Instructions(bundle),
		Version:      fact.Version,
		Degraded:     degraded || fellBack,
		PublishedAt:  now,
	}, fellBack
}
