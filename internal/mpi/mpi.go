// Package mpi implements an in-process, goroutine-backed substitute for the
// blocking message-passing runtime required by §6.4 of the design: rank/size
// introspection, communicator split, point-to-point send/receive (with
// in-place replace), broadcast, scatter, gather, reduce, and abort.
//
// A Comm is a fixed, ordered group of ranks. Every rank in a Comm holds a
// *Rank handle bound to its position in the group and issues collective and
// point-to-point calls through it, the same way an MPI program issues calls
// against an MPI_Comm. All calls block until the operation's peers have
// produced or consumed their side of it, matching the collective-as-barrier
// behavior described in the design's concurrency model.
package mpi

import "sync"

// ProcNull is the sentinel destination/source rank meaning "no such peer".
// Sending to ProcNull and receiving from ProcNull are both no-ops; see
// SendRecv and SendRecvReplace.
const ProcNull = -1

// Comm is a communicator: an ordered group of ranks that may address one
// another by their position in the group (their "comm-rank").
type Comm struct {
	name    string
	members []int // world ranks, indexed by comm-rank

	// mailbox[from][to] is the channel a sender at comm-rank `from` uses to
	// deliver a value to the receiver at comm-rank `to`. Using one channel
	// per ordered pair (rather than one inbox shared by all senders) keeps
	// concurrent collectives from reordering messages from different peers.
	mailbox [][]chan envelope

	splitMu    sync.Mutex
	splitState *splitState
}

type envelope struct {
	data any
}

// NewWorld builds the root communicator over `size` ranks, comm-rank i
// corresponding to world rank i.
func NewWorld(size int) *Comm {
	members := make([]int, size)
	for i := range members {
		members[i] = i
	}
	return newComm("world", members)
}

func newComm(name string, members []int) *Comm {
	n := len(members)
	mailbox := make([][]chan envelope, n)
	for i := range mailbox {
		mailbox[i] = make([]chan envelope, n)
		for j := range mailbox[i] {
			mailbox[i][j] = make(chan envelope, 1)
		}
	}
	return &Comm{name: name, members: members, mailbox: mailbox}
}

// Size returns the number of ranks in the communicator.
func (c *Comm) Size() int { return len(c.members) }

// Of returns a handle a rank at comm-rank `me` uses to issue calls on c.
func (c *Comm) Of(me int) *Rank {
	return &Rank{comm: c, me: me}
}

// Rank is one member's handle on a Comm: every send/receive/collective call
// is issued through a Rank, which knows the caller's own position in the
// group (mirroring MPI_Comm_rank's implicit role in every MPI_* call).
type Rank struct {
	comm *Comm
	me   int
}

// Me returns the caller's comm-rank within its Comm.
func (r *Rank) Me() int { return r.me }

// Size returns the number of ranks in the caller's Comm.
func (r *Rank) Size() int { return r.comm.Size() }

// WorldRank returns the world rank this comm-rank corresponds to.
func (r *Rank) WorldRank() int { return r.comm.members[r.me] }

// RankOf returns the comm-rank of the given world rank within c, or -1 if
// worldRank is not a member of c.
func (c *Comm) RankOf(worldRank int) int {
	for i, w := range c.members {
		if w == worldRank {
			return i
		}
	}
	return -1
}
