// Package history builds and maintains a client's audit log.
//
// The log is append-only with one exception: there is at most one live
// cash_flow entry per client. A fresh cash-flow snapshot replaces the
// existing one in place, keeping its original position in the list.
//
// Every event carries a message rendered once at write time. The phrasing
// is fixed: amounts always print with two decimal places, and the
// due/advance clauses of a worker payment appear only when nonzero.
package history

import (
	"fmt"
	"time"

	"workledger/internal/ledger"
	"workledger/internal/models"
)

// ClientCreated records a new client with its contracted total.
func ClientCreated(name string, totalAmount float64, at time.Time) models.HistoryEvent {
	return models.HistoryEvent{
		Kind:    models.EventClientCreated,
		Date:    at.Unix(),
		Message: fmt.Sprintf("Client %q created with total amount ₹%.2f", name, totalAmount),
	}
}

// ClientPayment records a payment received from the client, with the
// recomputed running totals.
func ClientPayment(amount, totalPaid, remaining float64, at time.Time) models.HistoryEvent {
	return models.HistoryEvent{
		Kind:      models.EventClientPayment,
		Date:      at.Unix(),
		Amount:    amount,
		TotalPaid: totalPaid,
		Remaining: remaining,
		Message: fmt.Sprintf("Client paid ₹%.2f. Total paid: ₹%.2f, Due: ₹%.2f",
			amount, totalPaid, remaining),
	}
}

// WorkerAdded records a new worker with its contracted pay.
func WorkerAdded(name string, totalPay float64, at time.Time) models.HistoryEvent {
	return models.HistoryEvent{
		Kind:       models.EventWorkerAdded,
		Date:       at.Unix(),
		WorkerName: name,
		TotalPay:   totalPay,
		Message:    fmt.Sprintf("Worker %q added with total pay ₹%.2f", name, totalPay),
	}
}

// WorkerPayment records a payment to a worker with the recomputed
// settlement figures. The due and advance clauses are appended only
// when the corresponding figure is nonzero.
func WorkerPayment(workerName string, amount, totalPaid, due, advance float64, at time.Time) models.HistoryEvent {
	msg := fmt.Sprintf("Paid ₹%.2f to worker %q. Total paid: ₹%.2f", amount, workerName, totalPaid)
	if due > 0 {
		msg += fmt.Sprintf(", Due: ₹%.2f", due)
	}
	if advance > 0 {
		msg += fmt.Sprintf(", Advance: ₹%.2f", advance)
	}
	return models.HistoryEvent{
		Kind:       models.EventWorkerPayment,
		Date:       at.Unix(),
		WorkerName: workerName,
		Amount:     amount,
		TotalPaid:  totalPaid,
		Due:        due,
		Advance:    advance,
		Message:    msg,
	}
}

// WorkerDeleted records a worker removal. The event is captured before the
// worker (and its payments) leave the client; prior worker_payment events
// for that worker are never removed.
func WorkerDeleted(name string, at time.Time) models.HistoryEvent {
	return models.HistoryEvent{
		Kind:       models.EventWorkerDeleted,
		Date:       at.Unix(),
		WorkerName: name,
		Message:    fmt.Sprintf("Worker %q deleted", name),
	}
}

// CashFlowSnapshot records the current cash-flow figures for a client.
func CashFlowSnapshot(cf ledger.CashFlow, at time.Time) models.HistoryEvent {
	return models.HistoryEvent{
		Kind:           models.EventCashFlow,
		Date:           at.Unix(),
		ClientPayments: cf.ClientPayments,
		WorkerPayments: cf.WorkerPayments,
		MoneyLeft:      cf.MoneyLeft,
		Message: fmt.Sprintf("Cash Flow: Received ₹%.2f, Paid ₹%.2f, Left ₹%.2f",
			cf.ClientPayments, cf.WorkerPayments, cf.MoneyLeft),
	}
}

// UpsertCashFlow inserts a cash_flow event into the log. If a cash_flow
// entry already exists the new snapshot overwrites the most recent one at
// its original index; otherwise it is appended. The result never holds
// more than one cash_flow entry.
func UpsertCashFlow(events []models.HistoryEvent, e models.HistoryEvent) []models.HistoryEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == models.EventCashFlow {
			events[i] = e
			return events
		}
	}
	return append(events, e)
}

// RemoveClientPayments removes every client_payment event whose amount
// equals the given amount. This is the deletion heuristic used when a
// client payment is removed: events are matched by amount, not by the
// payment they were recorded for, so two payments of the same amount
// lose both of their events.
func RemoveClientPayments(events []models.HistoryEvent, amount float64) []models.HistoryEvent {
	kept := events[:0]
	for _, e := range events {
		if e.Kind == models.EventClientPayment && e.Amount == amount {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
