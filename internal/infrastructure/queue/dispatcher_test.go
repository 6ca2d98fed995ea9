package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
)

type recordingSender struct {
	mu   sync.Mutex
	seen map[string][]int
}

func (s *recordingSender) Send(_ context.Context, rem domain.UpcomingReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var seq int
	_, _ = fmt.Sscanf(rem.User.ID, "%d", &seq)
	s.seen[rem.Reservation.ID] = append(s.seen[rem.Reservation.ID], seq)
	return nil
}

func reminder(reservationID string, seq int) domain.UpcomingReservation {
	return domain.UpcomingReservation{
		Reservation: &domain.Reservation{ID: reservationID},
		User:        &domain.User{ID: fmt.Sprint(seq)},
	}
}

func TestDispatcher_DeliversEverythingInOrderPerReservation(t *testing.T) {
	sender := &recordingSender{seen: make(map[string][]int)}
	d := NewDispatcher(3, sender, zerolog.Nop())
	d.Start(context.Background())

	var batch []domain.UpcomingReservation
	for seq := 0; seq < 20; seq++ {
		batch = append(batch, reminder(fmt.Sprintf("r%d", seq%5), seq))
	}
	if n, err := d.EnqueueBatch(batch); err != nil || n != len(batch) {
		t.Fatalf("expected %d queued, got %d (%v)", len(batch), n, err)
	}
	d.Close()

	if len(sender.seen) != 5 {
		t.Fatalf("expected 5 reservations, got %d", len(sender.seen))
	}
	for id, seqs := range sender.seen {
		if len(seqs) != 4 {
			t.Errorf("%s: expected 4 deliveries, got %d", id, len(seqs))
		}
		for i := 1; i < len(seqs); i++ {
			if seqs[i] < seqs[i-1] {
				t.Errorf("%s: out of order deliveries %v", id, seqs)
			}
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())
	first := d.shardIndex("652f1c0e9b1e8a0012345678")
	for i := 0; i < 10; i++ {
		if d.shardIndex("652f1c0e9b1e8a0012345678") != first {
			t.Fatal("shard index must be deterministic")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	if got := len(NewDispatcher(0, nil, zerolog.Nop()).workers); got != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, got)
	}
}

func TestDispatcher_EnqueueAfterCancelReturns(t *testing.T) {
	sender := &recordingSender{seen: make(map[string][]int)}
	d := NewDispatcher(1, sender, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	var batch []domain.UpcomingReservation
	for seq := 0; seq < 100; seq++ {
		batch = append(batch, reminder("r1", seq))
	}

	done := make(chan error, 1)
	go func() {
		_, err := d.EnqueueBatch(batch)
		d.Close()
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, ErrDispatcherStopped) {
			t.Fatalf("expected ErrDispatcherStopped, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("EnqueueBatch/Close blocked after context cancellation")
	}
}
