// Package transpose implements the Index Transposer (C3, §4.3), the
// deterministic mapping STS uses to find the owner of a given off-diagonal
// block's transpose peer. It has no transport dependency: the mapping is a
// pure function of (iteration, team, team-rank, num_teams, team-size).
package transpose

// Peer returns the (iteration, world-rank) of the process currently holding
// the transpose of the block team t's position c holds at iteration i.
//
// Y = (t + c + i*C) mod T is the column — the team whose original block sits
// at (t, c) this iteration. D = (t - Y + T) mod T is the positive circular
// distance from the diagonal. The transpose holder is at iteration D/C,
// world-rank Y*C + (D mod C).
func Peer(iter, team, trank, numTeams, teamSize int) (peerIter, peerRank int) {
	y := mod(team+trank+iter*teamSize, numTeams)
	d := mod(team-y, numTeams)
	return d / teamSize, y*teamSize + mod(d, teamSize)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
