package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// UniqueLearnerID returns a learner id no other test uses, so tests can
// share one database without cleanup.
func UniqueLearnerID() string {
	return "learner-" + uuid.New().String()[:8]
}

// UniqueSessionKey returns a session key no other test uses.
func UniqueSessionKey() string {
	return "test:" + uuid.New().String()
}

// SeedFact stores a raw difficulty fact, bypassing all validation.
func SeedFact(t *testing.T, pool *pgxpool.Pool, learnerID string, value domain.Descriptor, version int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO difficulty_facts (learner_id, fact_kind, value, topics, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		learnerID, domain.FactKindDifficulty, string(value), domain.DifficultyTopics, version,
	)
	if err != nil {
		t.Fatalf("testhelper: seed fact: %v", err)
	}
}

// CountFacts returns the number of fact rows stored for learnerID.
func CountFacts(t *testing.T, pool *pgxpool.Pool, learnerID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM difficulty_facts WHERE learner_id = $1`, learnerID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: count facts: %v", err)
	}
	return n
}
