package history

import (
	"testing"
	"time"

	"workledger/internal/ledger"
	"workledger/internal/models"
)

var testTime = time.Unix(1700000000, 0)

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		event models.HistoryEvent
		want  string
	}{
		{
			name:  "client created",
			event: ClientCreated("Sharma", 1000, testTime),
			want:  `Client "Sharma" created with total amount ₹1000.00`,
		},
		{
			name:  "client payment",
			event: ClientPayment(400, 400, 600, testTime),
			want:  `Client paid ₹400.00. Total paid: ₹400.00, Due: ₹600.00`,
		},
		{
			name:  "client payment fully settled",
			event: ClientPayment(700, 1100, 0, testTime),
			want:  `Client paid ₹700.00. Total paid: ₹1100.00, Due: ₹0.00`,
		},
		{
			name:  "worker added",
			event: WorkerAdded("Ramesh", 500, testTime),
			want:  `Worker "Ramesh" added with total pay ₹500.00`,
		},
		{
			name:  "worker payment with due",
			event: WorkerPayment("Ramesh", 300, 300, 200, 0, testTime),
			want:  `Paid ₹300.00 to worker "Ramesh". Total paid: ₹300.00, Due: ₹200.00`,
		},
		{
			name:  "worker payment with advance",
			event: WorkerPayment("Ramesh", 400, 700, 0, 200, testTime),
			want:  `Paid ₹400.00 to worker "Ramesh". Total paid: ₹700.00, Advance: ₹200.00`,
		},
		{
			name:  "worker payment cleared, no due or advance clause",
			event: WorkerPayment("Ramesh", 200, 500, 0, 0, testTime),
			want:  `Paid ₹200.00 to worker "Ramesh". Total paid: ₹500.00`,
		},
		{
			name:  "worker deleted",
			event: WorkerDeleted("Ramesh", testTime),
			want:  `Worker "Ramesh" deleted`,
		},
		{
			name:  "cash flow",
			event: CashFlowSnapshot(ledger.CashFlow{ClientPayments: 1100, WorkerPayments: 300, MoneyLeft: 800}, testTime),
			want:  `Cash Flow: Received ₹1100.00, Paid ₹300.00, Left ₹800.00`,
		},
		{
			name:  "cash flow negative money left",
			event: CashFlowSnapshot(ledger.CashFlow{ClientPayments: 200, WorkerPayments: 500, MoneyLeft: -300}, testTime),
			want:  `Cash Flow: Received ₹200.00, Paid ₹500.00, Left ₹-300.00`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Message != tt.want {
				t.Errorf("message = %q, want %q", tt.event.Message, tt.want)
			}
			if tt.event.Date != testTime.Unix() {
				t.Errorf("date = %d, want %d", tt.event.Date, testTime.Unix())
			}
		})
	}
}

func countKind(events []models.HistoryEvent, kind models.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestUpsertCashFlow(t *testing.T) {
	events := []models.HistoryEvent{
		ClientCreated("Sharma", 1000, testTime),
		ClientPayment(400, 400, 600, testTime),
	}

	// First snapshot appends.
	cf1 := CashFlowSnapshot(ledger.CashFlow{ClientPayments: 400, MoneyLeft: 400}, testTime)
	events = UpsertCashFlow(events, cf1)
	if len(events) != 3 {
		t.Fatalf("expected 3 events after first upsert, got %d", len(events))
	}
	if events[2].Kind != models.EventCashFlow {
		t.Fatalf("expected cash_flow appended at end, got %s", events[2].Kind)
	}

	// Later events land after the snapshot.
	events = append(events, ClientPayment(700, 1100, 0, testTime))

	// Second snapshot replaces in place, keeping position 2.
	cf2 := CashFlowSnapshot(ledger.CashFlow{ClientPayments: 1100, MoneyLeft: 1100}, testTime)
	events = UpsertCashFlow(events, cf2)
	if len(events) != 4 {
		t.Fatalf("expected 4 events after second upsert, got %d", len(events))
	}
	if got := countKind(events, models.EventCashFlow); got != 1 {
		t.Errorf("expected exactly 1 cash_flow entry, got %d", got)
	}
	if events[2].ClientPayments != 1100 {
		t.Errorf("cash_flow at original index not updated: %+v", events[2])
	}
}

func TestRemoveClientPayments(t *testing.T) {
	events := []models.HistoryEvent{
		ClientCreated("Sharma", 1000, testTime),
		ClientPayment(400, 400, 600, testTime),
		WorkerAdded("Ramesh", 500, testTime),
		ClientPayment(400, 800, 200, testTime),
		ClientPayment(250, 1050, 0, testTime),
	}

	// Amount matching removes BOTH entries of 400, not just one.
	events = RemoveClientPayments(events, 400)

	if got := countKind(events, models.EventClientPayment); got != 1 {
		t.Errorf("expected 1 client_payment entry left, got %d", got)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events left, got %d", len(events))
	}
	// Non-payment kinds are untouched.
	if countKind(events, models.EventWorkerAdded) != 1 || countKind(events, models.EventClientCreated) != 1 {
		t.Error("unrelated events must survive amount-based removal")
	}
}
