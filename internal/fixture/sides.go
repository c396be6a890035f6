package fixture

// assignSides flips a fair coin for the pair. Heads keeps the seating order
// as home/guest, tails swaps it. The pairing itself never changes.
func assignSides(pair [2]Participant, rng Rand) Match {
	if rng.Float64() < 0.5 {
		return Match{Home: pair[1], Guest: pair[0]}
	}
	return Match{Home: pair[0], Guest: pair[1]}
}
