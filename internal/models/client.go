package models

// Client represents one contracted job and everything booked against it.
// It is the unit of persistence: the full record, including payments,
// workers and history, is read and written as a whole.
type Client struct {
	// ID is the unique identifier for the client (UUID format).
	ID string `json:"id"`

	// Name is the display name of the client.
	Name string `json:"name"`

	// Rate is the contracted rate per unit of area.
	Rate float64 `json:"rate"`

	// Area is the contracted area.
	Area float64 `json:"area"`

	// TotalAmount is the contracted total, fixed at creation as rate × area.
	// It never changes afterwards, even if Rate or Area would suggest otherwise.
	TotalAmount float64 `json:"total_amount"`

	// CreatedAt is the Unix timestamp when the client was created.
	CreatedAt int64 `json:"created_at"`

	// Payments are the amounts received from the client, in insertion order.
	Payments []Payment `json:"payments"`

	// Workers are the people hired for this job.
	Workers []Worker `json:"workers"`

	// History is the audit log for this client, in insertion order.
	// Append-only, except the single cash_flow entry which is replaced
	// in place (see the history package).
	History []HistoryEvent `json:"history"`
}

// Worker represents a person hired against a client job.
type Worker struct {
	// ID is the unique identifier for the worker (UUID format),
	// unique within its client.
	ID string `json:"id"`

	// Name is the display name of the worker.
	Name string `json:"name"`

	// TotalPay is the contracted pay for this worker, fixed at creation.
	TotalPay float64 `json:"total_pay"`

	// Payments are the amounts disbursed to this worker, in insertion order.
	Payments []Payment `json:"payments"`
}

// Payment is a single dated amount. The same shape is used for payments
// received from a client and payments made to a worker.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format),
	// unique within its owning list.
	ID string `json:"id"`

	// Amount is the payment amount. Always > 0; validated at the service layer.
	Amount float64 `json:"amount"`

	// Date is the Unix timestamp of the payment.
	Date int64 `json:"date"`
}
