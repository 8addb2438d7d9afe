package trainer

import "time"

// Config controls the turn pipeline and the review cadence.
type Config struct {
	LearnerID         string
	LearnerName       string
	ReviewInterval    int
	ReviewWindow      int
	HistoryTurns      int
	GenerationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.LearnerID == "" {
		c.LearnerID = "kyrill"
	}
	if c.LearnerName == "" {
		c.LearnerName = "Kyrill"
	}
	if c.ReviewInterval <= 0 {
		c.ReviewInterval = 5
	}
	if c.ReviewWindow <= 0 {
		c.ReviewWindow = 20
	}
	if c.HistoryTurns < 0 {
		c.HistoryTurns = 0
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = 60 * time.Second
	}
	return c
}
