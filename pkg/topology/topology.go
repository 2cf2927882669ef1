// Package topology derives each rank's team/team-rank coordinate and the
// team_comm / row_comm communicators it needs (§4.2), and validates the
// preconditions (I1–I3) every run of ts or sts must satisfy before it enters
// the distributed phase.
package topology

import "github.com/gomlx/nbody-scatter/internal/mpi"

// Coord is one rank's position in the team/row grid (§3): team = rank/C,
// trank = rank%C. The team leader is the rank with TRank == 0.
type Coord struct {
	Rank, P, C int
	NumTeams   int
	Team       int
	TRank      int
}

// IsLeader reports whether this rank is its team's leader (trank == 0).
func (co Coord) IsLeader() bool { return co.TRank == 0 }

// BlockLen is B = N / num_teams, valid once N has passed Validate (I3 makes
// this exact, not just a ceiling).
func (co Coord) BlockLen(n int) int { return n / co.NumTeams }

// Derive computes rank's team/trank coordinate for a world of size P split
// into teams of size C. It does not validate preconditions; call Validate
// first.
func Derive(rank, p, c int) Coord {
	return Coord{
		Rank:     rank,
		P:        p,
		C:        c,
		NumTeams: p / c,
		Team:     rank / c,
		TRank:    rank % c,
	}
}

// Validate checks I1–I3 (P mod C = 0, C² ≤ P, N mod P = 0) and returns a
// descriptive error if any fail; it does not itself abort — callers on the
// master rank should report the error and call mpi.Abort across the world,
// per §7's "precondition failures abort all processes" policy.
func Validate(n, p, c int) error {
	if p%c != 0 {
		return errTeamsizeMustDivideP
	}
	if c*c > p {
		return errTeamsizeSquaredTooLarge
	}
	if n%p != 0 {
		return errPointsMustDivideByP
	}
	return nil
}

// Comms is the pair of communicators every rank needs for the rest of the
// run: team_comm (the C ranks sharing this rank's team) and row_comm (the
// num_teams team leaders-of-rank-trank across teams — see §3's invariant
// that world rank is recoverable from (team, trank)).
type Comms struct {
	Team *mpi.Rank
	Row  *mpi.Rank
}

// BuildComms performs the two MPI_Comm_split calls of §4.2: team_comm keyed
// by color=team, row_comm keyed by color=trank, both ordered by key=rank.
// It is a collective call: every rank in world must call it.
func BuildComms(world *mpi.Rank, co Coord) Comms {
	return Comms{
		Team: world.SplitRank(co.Team, co.Rank),
		Row:  world.SplitRank(co.TRank, co.Rank),
	}
}
