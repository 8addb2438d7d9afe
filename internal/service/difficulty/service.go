package difficulty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/pkg/keymutex"
)

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type factRepo interface {
	Get(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error)
	GetForUpdate(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error)
	CreateIfAbsent(ctx context.Context, fact domain.DifficultyFact) (*domain.DifficultyFact, error)
	Upsert(ctx context.Context, fact domain.DifficultyFact) (*domain.DifficultyFact, error)
	CompareAndSwap(ctx context.Context, learnerID, kind string, expectedVersion int64, value domain.Descriptor, now time.Time) (*domain.DifficultyFact, error)
	Count(ctx context.Context, learnerID string) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Observer is called after every successful level write.
type Observer func(ctx context.Context, fact domain.DifficultyFact)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the durable difficulty store of learners.
type Service struct {
	log   *slog.Logger
	facts factRepo
	tx    txManager
	now   func() time.Time

	locks keymutex.KeyMutex

	mu        sync.RWMutex
	observers []Observer
}

// NewService creates a new difficulty service.
func NewService(log *slog.Logger, facts factRepo, tx txManager) *Service {
	return &Service{
		log:   log.With("service", "difficulty"),
		facts: facts,
		tx:    tx,
		now:   time.Now,
	}
}

// OnChange registers fn to be called after every successful write.
func (s *Service) OnChange(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// GetCurrent returns the stored difficulty fact of learnerID. A missing fact
// is created at the default level, an invalid stored value is reset to it.
// When storage fails the default fact is returned together with an error
// wrapping ErrStorageUnavailable.
func (s *Service) GetCurrent(ctx context.Context, learnerID string) (domain.DifficultyFact, error) {
	fallback := domain.NewDifficultyFact(learnerID, domain.LevelDefault, s.now())

	fact, err := s.facts.Get(ctx, learnerID, domain.FactKindDifficulty)
	if errors.Is(err, domain.ErrNotFound) {
		created, cerr := s.facts.CreateIfAbsent(ctx, fallback)
		if cerr != nil {
			return fallback, storageErr("create difficulty", cerr)
		}
		if created.Version == 1 && created.Value == fallback.Value {
			s.log.InfoContext(ctx, "difficulty initialized",
				slog.String("learner_id", learnerID),
				slog.String("level", domain.LevelDefault.String()),
			)
			s.notify(ctx, *created)
		}
		fact = created
	} else if err != nil {
		return fallback, storageErr("get difficulty", err)
	}

	if fact.Value.IsValid() {
		return *fact, nil
	}
	return s.resetInvalid(ctx, fact, fallback)
}

func (s *Service) resetInvalid(ctx context.Context, fact *domain.DifficultyFact, fallback domain.DifficultyFact) (domain.DifficultyFact, error) {
	s.log.WarnContext(ctx, "stored difficulty is invalid, resetting to default",
		slog.String("learner_id", fact.LearnerID),
		slog.String("value", fact.Value.String()),
	)

	reset, err := s.facts.CompareAndSwap(ctx, fact.LearnerID, fact.Kind, fact.Version, fallback.Value, s.now())
	if errors.Is(err, domain.ErrConflict) {
		// Another writer got there first; take whatever it stored if usable.
		again, gerr := s.facts.Get(ctx, fact.LearnerID, fact.Kind)
		if gerr != nil {
			return fallback, storageErr("get difficulty", gerr)
		}
		if again.Value.IsValid() {
			return *again, nil
		}
		return fallback, nil
	}
	if err != nil {
		return fallback, storageErr("reset difficulty", err)
	}

	s.notify(ctx, *reset)
	return *reset, nil
}

// SetCurrent overwrites the level of learnerID. Values outside the closed
// descriptor set fail with ErrInvalidLevel and nothing is written.
func (s *Service) SetCurrent(ctx context.Context, learnerID string, value domain.Descriptor) (domain.DifficultyFact, error) {
	level, err := value.Level()
	if err != nil {
		return domain.DifficultyFact{}, fmt.Errorf("set difficulty: %w", err)
	}

	unlock := s.locks.Lock(learnerID)
	defer unlock()

	saved, err := s.facts.Upsert(ctx, domain.NewDifficultyFact(learnerID, level, s.now()))
	if err != nil {
		return domain.DifficultyFact{}, storageErr("upsert difficulty", err)
	}

	s.log.InfoContext(ctx, "difficulty set",
		slog.String("learner_id", learnerID),
		slog.String("level", level.String()),
	)
	s.notify(ctx, *saved)
	return *saved, nil
}

// ApplyRecommendation moves the learner to value unless the stored fact
// changed since observed was read. A stale observation fails with
// ErrConflict. The second result reports whether anything was written.
func (s *Service) ApplyRecommendation(ctx context.Context, observed domain.DifficultyFact, value domain.Descriptor) (domain.DifficultyFact, bool, error) {
	if _, err := value.Level(); err != nil {
		return observed, false, fmt.Errorf("apply recommendation: %w", err)
	}

	unlock := s.locks.Lock(observed.LearnerID)
	defer unlock()

	var (
		result  domain.DifficultyFact
		changed bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.facts.GetForUpdate(ctx, observed.LearnerID, domain.FactKindDifficulty)
		if err != nil {
			return err
		}
		if current.Version != observed.Version {
			return fmt.Errorf("%w: version %d, observed %d", domain.ErrConflict, current.Version, observed.Version)
		}
		if current.Value == value {
			result = *current
			return nil
		}

		updated, err := s.facts.CompareAndSwap(ctx, current.LearnerID, current.Kind, current.Version, value, s.now())
		if err != nil {
			return err
		}
		result, changed = *updated, true
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		return observed, false, fmt.Errorf("apply recommendation: %w", err)
	case err != nil:
		return observed, false, storageErr("apply recommendation", err)
	}

	if changed {
		s.log.InfoContext(ctx, "difficulty changed",
			slog.String("learner_id", observed.LearnerID),
			slog.String("from", observed.Value.String()),
			slog.String("to", result.Value.String()),
		)
		s.notify(ctx, result)
	}
	return result, changed, nil
}

// FactCount returns the number of stored facts of learnerID.
func (s *Service) FactCount(ctx context.Context, learnerID string) (int, error) {
	n, err := s.facts.Count(ctx, learnerID)
	if err != nil {
		return 0, storageErr("count facts", err)
	}
	return n, nil
}

func (s *Service) notify(ctx context.Context, fact domain.DifficultyFact) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(ctx, fact)
	}
}

func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
