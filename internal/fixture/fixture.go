// Package fixture builds single round-robin schedules using the circle
// method. Teams are seated in random order, padded with a bye when the
// roster is odd, and home/guest sides are drawn per match.
package fixture

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrMissingLeagueName = errors.New("league name is required")
	ErrInvalidTeamName   = errors.New("team name is required")
	ErrInsufficientTeams = errors.New("at least two teams are required")
	ErrDuplicateTeam     = errors.New("duplicate team")
)

type options struct {
	rng  Rand
	seed *int64
}

// Option configures a call to Generate.
type Option func(*options)

// WithSeed makes generation reproducible: the same seed and roster always
// yield the same schedule. It takes precedence over WithRand.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithRand supplies the random source directly. The source is used by this
// call only and must not be shared with other goroutines while it runs.
// It is ignored when WithSeed is also given.
func WithRand(rng Rand) Option {
	return func(o *options) { o.rng = rng }
}

// Generate validates the league and roster and returns a complete schedule.
// Without WithSeed or WithRand every call draws fresh randomness, so two
// calls with the same input normally produce different, equally valid,
// schedules.
func Generate(leagueName string, teams []Team, opts ...Option) (*Schedule, error) {
	if err := validate(leagueName, teams); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var seed int64
	var rng Rand
	switch {
	case o.seed != nil:
		seed = *o.seed
		rng = rand.New(rand.NewSource(seed))
	case o.rng != nil:
		rng = o.rng
	default:
		seed = time.Now().UnixNano()
		rng = rand.New(rand.NewSource(seed))
	}

	arrangement := arrange(padBye(shuffle(teams, rng)))

	pairings := rotate(arrangement)
	rounds := make([]Round, len(pairings))
	for i, pairs := range pairings {
		matches := make([]Match, len(pairs))
		for j, pair := range pairs {
			matches[j] = assignSides(pair, rng)
		}
		rounds[i] = Round{Number: i + 1, Matches: matches}
	}

	return &Schedule{
		LeagueName: leagueName,
		Seed:       seed,
		teams:      append([]Team(nil), teams...),
		rounds:     rounds,
	}, nil
}

func validate(leagueName string, teams []Team) error {
	if strings.TrimSpace(leagueName) == "" {
		return ErrMissingLeagueName
	}
	seen := make(map[string]int, len(teams))
	for i, t := range teams {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: team %d has no name", ErrInvalidTeamName, i+1)
		}
		if prev, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: teams %d and %d share id %q", ErrDuplicateTeam, prev+1, i+1, t.ID)
		}
		seen[t.ID] = i
	}
	if len(teams) < 2 {
		return fmt.Errorf("%w (got %d)", ErrInsufficientTeams, len(teams))
	}
	return nil
}
