package mpi

import "sort"

// splitState coordinates one collective Split call: every member of the
// parent Comm deposits its (color, key) pair, and whichever caller happens
// to be last to arrive computes the partition for everyone. This is the
// same shape as an AllGather followed by an identical local computation on
// every rank, which is what MPI_Comm_split amounts to under the hood.
type splitState struct {
	entries []splitEntry
	arrived int
	done    chan struct{}
	results map[int]*Comm
}

type splitEntry struct {
	color, key, worldRank int
}

// Split partitions the caller's Comm by color: all ranks that pass the same
// color end up in the same new Comm, ordered by (key, world rank). It is a
// collective call — every rank in the parent Comm must call it exactly once,
// with its own color/key, before any of them proceeds.
//
// Per §4.2, team_comm is built with color = team, key = rank, and row_comm
// with color = trank, key = rank.
func (r *Rank) Split(color, key int) *Comm {
	c := r.comm
	c.splitMu.Lock()
	if c.splitState == nil {
		c.splitState = &splitState{
			entries: make([]splitEntry, len(c.members)),
			done:    make(chan struct{}),
		}
	}
	st := c.splitState
	st.entries[r.me] = splitEntry{color: color, key: key, worldRank: c.members[r.me]}
	st.arrived++
	last := st.arrived == len(c.members)
	if last {
		// the next Split on c starts from a fresh state
		c.splitState = nil
	}
	c.splitMu.Unlock()

	if last {
		st.results = partitionByColor(st.entries)
		close(st.done)
	}
	<-st.done
	return st.results[color]
}

// SplitRank is Split followed by looking up the caller's own comm-rank in
// the resulting Comm, returning a ready-to-use Rank handle on it.
func (r *Rank) SplitRank(color, key int) *Rank {
	c := r.Split(color, key)
	return c.Of(c.RankOf(r.WorldRank()))
}

func partitionByColor(entries []splitEntry) map[int]*Comm {
	groups := make(map[int][]splitEntry)
	for _, e := range entries {
		groups[e.color] = append(groups[e.color], e)
	}
	results := make(map[int]*Comm, len(groups))
	for color, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].key != group[j].key {
				return group[i].key < group[j].key
			}
			return group[i].worldRank < group[j].worldRank
		})
		members := make([]int, len(group))
		for i, e := range group {
			members[i] = e.worldRank
		}
		results[color] = newComm("split", members)
	}
	return results
}
