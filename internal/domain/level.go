package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a difficulty tier between LevelMin and LevelMax.
type Level int

const (
	LevelMin Level = 1
	LevelMax Level = 6

	// LevelDefault is assigned to a learner that has no stored level yet.
	LevelDefault = LevelMin
)

const descriptorPrefix = "Kyrills aktuelle Schwierigkeitsstufe ist "

// Descriptor is the canonical sentence that identifies a level. It is the
// stored fact value, the lookup key of the policy table and the literal the
// review oracle must answer with.
type Descriptor string

func (d Descriptor) String() string { return string(d) }

// Level parses the descriptor. See ParseDescriptor.
func (d Descriptor) Level() (Level, error) { return ParseDescriptor(string(d)) }

// IsValid reports whether d is one of the six canonical descriptors.
func (d Descriptor) IsValid() bool {
	_, err := ParseDescriptor(string(d))
	return err == nil
}

func (l Level) IsValid() bool { return l >= LevelMin && l <= LevelMax }

func (l Level) String() string { return strconv.Itoa(int(l)) }

// Descriptor returns the canonical sentence for l. It panics for levels
// outside the closed set, which is a programming error.
func (l Level) Descriptor() Descriptor {
	if !l.IsValid() {
		panic(fmt.Sprintf("domain: descriptor for invalid level %d", int(l)))
	}
	return Descriptor(descriptorPrefix + l.String())
}

// Clamp bounds l to [LevelMin, LevelMax].
func (l Level) Clamp() Level {
	switch {
	case l < LevelMin:
		return LevelMin
	case l > LevelMax:
		return LevelMax
	}
	return l
}

// ParseDescriptor maps a canonical descriptor back to its level. Anything
// but an exact match of one of the six sentences yields ErrInvalidLevel.
func ParseDescriptor(s string) (Level, error) {
	rest, ok := strings.CutPrefix(s, descriptorPrefix)
	if !ok || len(rest) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	n := Level(rest[0] - '0')
	if !n.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return n, nil
}

// AllLevels returns the closed set of levels in ascending order.
func AllLevels() []Level {
	levels := make([]Level, 0, int(LevelMax))
	for l := LevelMin; l <= LevelMax; l++ {
		levels = append(levels, l)
	}
	return levels
}
