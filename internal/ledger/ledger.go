// Package ledger holds the pure computation rules of the client/worker
// ledger: paid totals, due/advance settlement figures and the per-client
// cash flow. Everything here is side-effect free; persistence and history
// recording live in the service layer.
package ledger

import "workledger/internal/models"

// PaidTotal sums the amounts of a payment list.
// The result is order-independent: removing a payment and re-summing
// gives the same total as never having added it.
func PaidTotal(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// Settlement computes the due/advance pair for a contracted total and a
// paid total. Both figures are floored at zero, so at most one is nonzero;
// both are zero exactly when paid == contracted.
//
//	due     = max(0, contracted - paid)
//	advance = max(0, paid - contracted)
//
// The same rule covers a client's remaining balance (the due side) and a
// worker's due/advance.
func Settlement(contracted, paid float64) (due, advance float64) {
	if diff := contracted - paid; diff > 0 {
		due = diff
	}
	if diff := paid - contracted; diff > 0 {
		advance = diff
	}
	return due, advance
}

// ClientBalance is the derived payment summary for a client.
type ClientBalance struct {
	TotalPaid float64
	Remaining float64 // floored at zero
}

// BalanceOf computes a client's paid total and remaining balance.
func BalanceOf(c *models.Client) ClientBalance {
	paid := PaidTotal(c.Payments)
	remaining, _ := Settlement(c.TotalAmount, paid)
	return ClientBalance{TotalPaid: paid, Remaining: remaining}
}

// WorkerBalance is the derived payment summary for a worker.
type WorkerBalance struct {
	TotalPaid float64
	Due       float64
	Advance   float64
}

// BalanceOfWorker computes a worker's paid total and due/advance figures.
func BalanceOfWorker(w *models.Worker) WorkerBalance {
	paid := PaidTotal(w.Payments)
	due, advance := Settlement(w.TotalPay, paid)
	return WorkerBalance{TotalPaid: paid, Due: due, Advance: advance}
}
