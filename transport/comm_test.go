package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommunicator_Bcast(t *testing.T) {
	const np = 6
	comm := NewCommunicator(np)
	results := make([][]byte, np)
	var wg sync.WaitGroup
	wg.Add(np)
	for rank := 0; rank < np; rank++ {
		go func(rank int) {
			defer wg.Done()
			var payload []byte
			if rank == 0 {
				payload = []byte("seed corners")
			}
			results[rank] = comm.Bcast(rank, 0, payload)
		}(rank)
	}
	wg.Wait()
	for rank := 0; rank < np; rank++ {
		assert.Equal(t, "seed corners", string(results[rank]))
	}
}

func TestCommunicator_BcastRepeated(t *testing.T) {
	const np = 4
	const rounds = 50
	comm := NewCommunicator(np)
	results := make([][]string, np)
	for i := range results {
		results[i] = make([]string, rounds)
	}
	var wg sync.WaitGroup
	wg.Add(np)
	for rank := 0; rank < np; rank++ {
		go func(rank int) {
			defer wg.Done()
			for round := 0; round < rounds; round++ {
				var payload []byte
				if rank == 0 {
					payload = []byte{byte(round)}
				}
				out := comm.Bcast(rank, 0, payload)
				results[rank][round] = string(out)
			}
		}(rank)
	}
	wg.Wait()
	for round := 0; round < rounds; round++ {
		want := string([]byte{byte(round)})
		for rank := 0; rank < np; rank++ {
			assert.Equal(t, want, results[rank][round])
		}
	}
}

func TestCommunicator_AllReduceSum(t *testing.T) {
	const np = 8
	comm := NewCommunicator(np)
	totals := make([]int64, np)
	var wg sync.WaitGroup
	wg.Add(np)
	for rank := 0; rank < np; rank++ {
		go func(rank int) {
			defer wg.Done()
			totals[rank] = comm.AllReduceSum(rank, int64(rank+1))
		}(rank)
	}
	wg.Wait()
	for rank := 0; rank < np; rank++ {
		assert.EqualValues(t, 36, totals[rank]) // 1+2+...+8
	}
}

func TestCommunicator_Barrier(t *testing.T) {
	const np = 10
	comm := NewCommunicator(np)
	var mu sync.Mutex
	arrived := 0
	var wg sync.WaitGroup
	wg.Add(np)
	for rank := 0; rank < np; rank++ {
		go func() {
			defer wg.Done()
			mu.Lock()
			arrived++
			mu.Unlock()
			comm.Barrier()
			mu.Lock()
			assert.Equal(t, np, arrived)
			mu.Unlock()
		}()
	}
	wg.Wait()
}

func TestMailBox_PointToPoint(t *testing.T) {
	const np = 4
	mb := NewMailBox[int](np)
	comm := NewCommunicator(np)

	var wg sync.WaitGroup
	wg.Add(np)
	received := make([][]int, np)
	for rank := 0; rank < np; rank++ {
		go func(rank int) {
			defer wg.Done()
			target := (rank + 1) % np
			mb.Send(target, rank*10)
			comm.Barrier()
			received[rank] = append(received[rank], mb.Drain(rank)...)
		}(rank)
	}
	wg.Wait()
	for rank := 0; rank < np; rank++ {
		from := (rank - 1 + np) % np
		assert.Equal(t, []int{from * 10}, received[rank])
	}
}

func TestCommunicator_Abort(t *testing.T) {
	comm := NewCommunicator(2)
	ok, err := comm.IsAborted()
	assert.False(t, ok)
	assert.NoError(t, err)
	comm.Abort(assert.AnError)
	ok, err = comm.IsAborted()
	assert.True(t, ok)
	assert.Equal(t, assert.AnError, err)
}
