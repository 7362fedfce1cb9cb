package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mc-theer/ticketd/internal/domain"
)

func TestNew_DefaultConfig(t *testing.T) {
	w := New(Config{})

	if w.pollInterval != defaultPollInterval {
		t.Errorf("expected default poll interval %v, got %v", defaultPollInterval, w.pollInterval)
	}
	if w.staleAfter != defaultStaleAfter {
		t.Errorf("expected default stale threshold %v, got %v", defaultStaleAfter, w.staleAfter)
	}
	if w.batchSize != defaultBatchSize {
		t.Errorf("expected default batch size %d, got %d", defaultBatchSize, w.batchSize)
	}
	if w.logger == nil {
		t.Error("logger should be initialized")
	}
}

func TestNew_CustomConfig(t *testing.T) {
	w := New(Config{
		PollInterval: 5 * time.Second,
		StaleAfter:   time.Minute,
		BatchSize:    10,
	})

	if w.pollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", w.pollInterval)
	}
	if w.staleAfter != time.Minute {
		t.Errorf("expected stale threshold 1m, got %v", w.staleAfter)
	}
	if w.batchSize != 10 {
		t.Errorf("expected batch size 10, got %d", w.batchSize)
	}
}

func TestWorker_IsStopped(t *testing.T) {
	w := New(Config{})

	if w.IsStopped() {
		t.Error("should not be stopped initially")
	}

	w.stoppedMu.Lock()
	w.stopped = true
	w.stoppedMu.Unlock()

	if !w.IsStopped() {
		t.Error("should be stopped")
	}
}

func TestWorker_StartWithoutQueueConnection(t *testing.T) {
	// Брокер недоступен: main передаёт nil-соединение, воркер обязан
	// подняться в polling-only режиме, а не упасть на consumer'е
	ticket := openTicket(1, 0)
	tickets := &fakeTicketStore{
		tickets: map[int64]*domain.Ticket{1: ticket},
		stale:   []domain.Ticket{*ticket},
	}
	w := New(Config{
		Tickets:      tickets,
		Categories:   &fakeCategoryStore{},
		Triager:      &fakeTriager{result: goodResult()},
		Conn:         nil,
		PollInterval: time.Hour, // только стартовый poll
	})

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start without queue connection: %v", err)
	}
	w.Stop()

	if w.consumer != nil {
		t.Error("consumer must not be created without a connection")
	}
	// Стартовый poll обработал застрявший тикет
	if len(tickets.commits) != 1 {
		t.Errorf("expected the stale ticket processed by poll, got %d commits", len(tickets.commits))
	}
}

func TestPoll_ProcessesStaleTickets(t *testing.T) {
	first := openTicket(1, 0)
	second := openTicket(2, 0)
	tickets := &fakeTicketStore{
		tickets: map[int64]*domain.Ticket{1: first, 2: second},
		stale:   []domain.Ticket{*first, *second},
	}
	w := newTestWorker(tickets, &fakeCategoryStore{}, &fakeTriager{result: goodResult()})

	w.poll(context.Background())

	if len(tickets.commits) != 2 {
		t.Errorf("expected both stale tickets processed, got %d commits", len(tickets.commits))
	}
}

func TestPoll_ListErrorIsSwallowed(t *testing.T) {
	tickets := &fakeTicketStore{staleErr: errors.New("db down")}
	w := newTestWorker(tickets, &fakeCategoryStore{}, &fakeTriager{result: goodResult()})

	// Не должно паниковать и не должно трогать тикеты
	w.poll(context.Background())

	if len(tickets.commits) != 0 {
		t.Error("no commits expected on list failure")
	}
}

func TestPoll_TicketErrorDoesNotStopBatch(t *testing.T) {
	// Первый тикет исчез между списком и обработкой — второй всё равно
	// должен быть обработан
	second := openTicket(2, 0)
	tickets := &fakeTicketStore{
		tickets: map[int64]*domain.Ticket{2: second},
		stale:   []domain.Ticket{*openTicket(1, 0), *second},
	}
	w := newTestWorker(tickets, &fakeCategoryStore{}, &fakeTriager{result: goodResult()})

	w.poll(context.Background())

	if len(tickets.commits) != 1 {
		t.Fatalf("expected the surviving ticket processed, got %d commits", len(tickets.commits))
	}
	if tickets.commitIDs[0] != 2 {
		t.Errorf("expected ticket 2 committed, got %d", tickets.commitIDs[0])
	}
}
