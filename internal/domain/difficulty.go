package domain

import "time"

// FactKindDifficulty is the fact kind under which the level is stored.
const FactKindDifficulty = "difficulty"

// DifficultyTopics tags every stored difficulty fact.
var DifficultyTopics = []string{"schwierigkeitsstufe"}

// DifficultyFact is the durable level record of one learner. There is
// exactly one per (LearnerID, Kind).
type DifficultyFact struct {
	LearnerID string
	Kind      string
	Value     Descriptor
	Topics    []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Level parses the stored value.
func (f DifficultyFact) Level() (Level, error) { return f.Value.Level() }

// NewDifficultyFact returns an unsaved fact for learnerID at level l.
func NewDifficultyFact(learnerID string, l Level, now time.Time) DifficultyFact {
	return DifficultyFact{
		LearnerID: learnerID,
		Kind:      FactKindDifficulty,
		Value:     l.Descriptor(),
		Topics:    append([]string(nil), DifficultyTopics...),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OptionSimilarity describes how wrong options relate to the correct one.
type OptionSimilarity string

const (
	SimilarityUnrelated        OptionSimilarity = "unrelated"
	SimilaritySameCategory     OptionSimilarity = "same-category"
	SimilarityGrammaticalForms OptionSimilarity = "grammatical-forms"
	// SimilarityNone is used by the free-input level, which shows no options.
	SimilarityNone OptionSimilarity = "none"
)

func (s OptionSimilarity) String() string { return string(s) }

func (s OptionSimilarity) IsValid() bool {
	switch s {
	case SimilarityUnrelated, SimilaritySameCategory, SimilarityGrammaticalForms, SimilarityNone:
		return true
	}
	return false
}

// ConstraintBundle holds the generation rules of one level.
type ConstraintBundle struct {
	Level      Level
	Title      string
	MinWords   int
	MaxWords   int
	MinOptions int
	MaxOptions int
	Similarity OptionSimilarity
	Example    string
}

// FreeInput reports whether tasks of this bundle are answered without options.
func (b ConstraintBundle) FreeInput() bool { return b.MaxOptions == 0 }
