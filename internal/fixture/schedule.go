package fixture

// ByeName is the display marker for the bye participant.
const ByeName = "NO PLAY"

// Team is a real participant supplied by the caller.
type Team struct {
	ID   string
	Name string
}

// Participant is either a real Team or the bye. The zero value is not a
// valid participant; build one with Real or Bye.
type Participant struct {
	team  Team
	bye   bool
	valid bool
}

// Real wraps a team as a participant.
func Real(t Team) Participant {
	return Participant{team: t, valid: true}
}

// Bye returns the sentinel participant used to even out an odd roster.
func Bye() Participant {
	return Participant{bye: true, valid: true}
}

// IsBye reports whether p is the bye sentinel.
func (p Participant) IsBye() bool { return p.bye }

// Team returns the wrapped team. ok is false for the bye.
func (p Participant) Team() (t Team, ok bool) {
	if p.bye || !p.valid {
		return Team{}, false
	}
	return p.team, true
}

// Name returns the team name, or ByeName for the bye.
func (p Participant) Name() string {
	if p.bye {
		return ByeName
	}
	return p.team.Name
}

func (p Participant) same(o Participant) bool {
	if p.bye || o.bye {
		return p.bye && o.bye
	}
	return p.team.ID == o.team.ID
}

// Match is a single fixture. Home and guest are cosmetic labels.
type Match struct {
	Home  Participant
	Guest Participant
}

// Resting returns the real team sitting out when this match involves the
// bye.
func (m Match) Resting() (Team, bool) {
	switch {
	case m.Home.IsBye():
		return m.Guest.Team()
	case m.Guest.IsBye():
		return m.Home.Team()
	}
	return Team{}, false
}

// Involves reports whether the team with the given ID plays in m.
func (m Match) Involves(id string) bool {
	for _, p := range []Participant{m.Home, m.Guest} {
		if t, ok := p.Team(); ok && t.ID == id {
			return true
		}
	}
	return false
}

// Round is one matchday. Number is 1-based.
type Round struct {
	Number  int
	Matches []Match
}

// Resting returns the team on a bye this round, if any.
func (r Round) Resting() (Team, bool) {
	for _, m := range r.Matches {
		if t, ok := m.Resting(); ok {
			return t, true
		}
	}
	return Team{}, false
}

// Schedule is the complete single round-robin for a league. It is not
// modified after Generate returns it; accessors hand out copies.
type Schedule struct {
	LeagueName string
	// Seed regenerates this schedule via WithSeed. It is zero when the
	// schedule was drawn from a source supplied with WithRand.
	Seed int64

	teams  []Team
	rounds []Round
}

// Rounds returns a copy of the schedule's rounds.
func (s *Schedule) Rounds() []Round {
	out := make([]Round, len(s.rounds))
	for i, r := range s.rounds {
		out[i] = Round{Number: r.Number, Matches: append([]Match(nil), r.Matches...)}
	}
	return out
}

// Teams returns the real teams in the order they were supplied. The bye is
// never included.
func (s *Schedule) Teams() []Team {
	return append([]Team(nil), s.teams...)
}

// HasBye reports whether the roster was padded with the bye.
func (s *Schedule) HasBye() bool {
	return len(s.teams)%2 == 1
}

// MatchCount returns the number of matches between real teams.
func (s *Schedule) MatchCount() int {
	n := len(s.teams)
	return n * (n - 1) / 2
}
