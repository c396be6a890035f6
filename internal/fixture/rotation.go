package fixture

// rotate produces the circle-method pairings for an even arrangement of
// seats. Seat 0 stays put; seats 1..n-1 form a ring that turns one step per
// round, the occupant of the last seat moving to seat 1.
//
// Rather than splicing the slice, the occupant of a seat in a given round is
// computed from the starting arrangement. The result is n-1 rounds of n/2
// pairs, every pair of seats meeting exactly once.
func rotate(arrangement []Participant) [][][2]Participant {
	n := len(arrangement)
	ring := n - 1

	occupant := func(pos, round int) Participant {
		if pos == 0 {
			return arrangement[0]
		}
		idx := ((pos-1-round)%ring + ring) % ring
		return arrangement[1+idx]
	}

	rounds := make([][][2]Participant, ring)
	for r := 0; r < ring; r++ {
		pairs := make([][2]Participant, n/2)
		for j := 0; j < n/2; j++ {
			pairs[j] = [2]Participant{occupant(j, r), occupant(n-1-j, r)}
		}
		rounds[r] = pairs
	}
	return rounds
}
