package ledger

import "workledger/internal/models"

// CashFlow is the money-in/money-out picture for one client.
type CashFlow struct {
	// ClientPayments is the sum of all payments received from the client.
	ClientPayments float64 `json:"client_payments"`

	// WorkerPayments is the sum of all payments made to the client's workers.
	WorkerPayments float64 `json:"worker_payments"`

	// MoneyLeft is ClientPayments - WorkerPayments. Signed: unlike
	// due/advance there is no floor, paying workers more than was
	// received goes negative.
	MoneyLeft float64 `json:"money_left"`
}

// ComputeCashFlow derives the cash flow across a client's own payments and
// all of its workers' payments. A deleted worker no longer contributes:
// only workers currently on the client are counted.
func ComputeCashFlow(c *models.Client) CashFlow {
	received := PaidTotal(c.Payments)
	var paidOut float64
	for i := range c.Workers {
		paidOut += PaidTotal(c.Workers[i].Payments)
	}
	return CashFlow{
		ClientPayments: received,
		WorkerPayments: paidOut,
		MoneyLeft:      received - paidOut,
	}
}

// HasPayments reports whether the client has at least one payment on
// either side. A cash-flow snapshot is only ever persisted when this
// holds; otherwise cash flow is a pure read.
func HasPayments(c *models.Client) bool {
	if len(c.Payments) > 0 {
		return true
	}
	for i := range c.Workers {
		if len(c.Workers[i].Payments) > 0 {
			return true
		}
	}
	return false
}
