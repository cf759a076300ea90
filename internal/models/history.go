package models

// EventKind discriminates history events.
type EventKind string

const (
	EventClientCreated EventKind = "client_created"
	EventClientPayment EventKind = "client_payment"
	EventWorkerAdded   EventKind = "worker_added"
	EventWorkerPayment EventKind = "worker_payment"
	EventWorkerDeleted EventKind = "worker_deleted"
	EventCashFlow      EventKind = "cash_flow"
)

// HistoryEvent is one audit record in a client's history log.
// The Message is rendered once at write time and never regenerated;
// the numeric fields carry the figures that went into it, per kind.
type HistoryEvent struct {
	// Kind discriminates which numeric fields are meaningful.
	Kind EventKind `json:"kind"`

	// Date is the Unix timestamp of the recorded action.
	Date int64 `json:"date"`

	// Message is the pre-rendered human-readable description.
	Message string `json:"message"`

	// Amount is the payment amount (client_payment, worker_payment).
	Amount float64 `json:"amount,omitempty"`

	// TotalPaid is the running paid total after the payment
	// (client_payment, worker_payment).
	TotalPaid float64 `json:"total_paid,omitempty"`

	// Remaining is what the client still owes after the payment,
	// floored at zero (client_payment).
	Remaining float64 `json:"remaining,omitempty"`

	// Due and Advance are the worker settlement figures after the
	// payment (worker_payment). At most one is nonzero.
	Due     float64 `json:"due,omitempty"`
	Advance float64 `json:"advance,omitempty"`

	// WorkerName identifies the worker for worker_added, worker_payment
	// and worker_deleted events. Kept by name: the worker record itself
	// may be deleted later while the event stays.
	WorkerName string `json:"worker_name,omitempty"`

	// TotalPay is the worker's contracted pay (worker_added).
	TotalPay float64 `json:"total_pay,omitempty"`

	// ClientPayments, WorkerPayments and MoneyLeft are the cash-flow
	// snapshot figures (cash_flow). MoneyLeft is signed.
	ClientPayments float64 `json:"client_payments,omitempty"`
	WorkerPayments float64 `json:"worker_payments,omitempty"`
	MoneyLeft      float64 `json:"money_left,omitempty"`
}
