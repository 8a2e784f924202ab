package transport

import "sync"

// MailBox implements point-to-point exchange between ranks sharing this
// process: the in-process stand-in for the irregular rank-to-rank
// messages a distributed reconciliation pass would otherwise send over
// MPI to hand a shared face's RemoteRecord to whichever rank owns the
// other side of it (isurf/reconcile.go's Reconcile).
//
// Every rank's goroutine can already see every other rank's inbox
// directly, so Send writes straight into the target's slot under a
// mutex instead of staging outbound buffers and relaying them over
// per-rank channels the way a real wire would require.
type MailBox[T any] struct {
	mu    sync.Mutex
	inbox [][]T
}

// NewMailBox allocates a mailbox sized for numRanks ranks.
func NewMailBox[T any](numRanks int) *MailBox[T] {
	return &MailBox[T]{inbox: make([][]T, numRanks)}
}

// Send appends msg to targetRank's inbox.
func (mb *MailBox[T]) Send(targetRank int, msg T) {
	mb.mu.Lock()
	mb.inbox[targetRank] = append(mb.inbox[targetRank], msg)
	mb.mu.Unlock()
}

// SendToAll appends msg to every inbox but myRank's own.
func (mb *MailBox[T]) SendToAll(myRank int, msg T) {
	for r := range mb.inbox {
		if r != myRank {
			mb.Send(r, msg)
		}
	}
}

// Drain empties and returns myRank's inbox. Callers must already have
// synchronised (Communicator.Barrier) with every rank that might still
// be sending to myRank, or a message could arrive after Drain returns.
func (mb *MailBox[T]) Drain(myRank int) []T {
	mb.mu.Lock()
	msgs := mb.inbox[myRank]
	mb.inbox[myRank] = nil
	mb.mu.Unlock()
	return msgs
}
