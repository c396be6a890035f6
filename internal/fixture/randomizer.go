package fixture

import "sort"

// Rand is the source of randomness used for seating and side assignment.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// byeKey sorts below every draw from Float64, which lies in [0, 1).
const byeKey = -1.0

type seat struct {
	p   Participant
	key float64
}

// shuffle attaches an independent uniform draw to every team.
func shuffle(teams []Team, rng Rand) []seat {
	seats := make([]seat, len(teams))
	for i, t := range teams {
		seats[i] = seat{p: Real(t), key: rng.Float64()}
	}
	return seats
}

// padBye appends the bye when the roster is odd so the count is even.
func padBye(seats []seat) []seat {
	if len(seats)%2 == 0 {
		return seats
	}
	return append(seats, seat{p: Bye(), key: byeKey})
}

// arrange orders seats by key and drops the keys.
func arrange(seats []seat) []Participant {
	sort.SliceStable(seats, func(i, j int) bool {
		return seats[i].key < seats[j].key
	})
	out := make([]Participant, len(seats))
	for i, s := range seats {
		out[i] = s.p
	}
	return out
}
