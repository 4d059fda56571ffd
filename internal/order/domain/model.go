package domain

import "errors"

// Notification is the inbound FeexPay payload. Every field is optional on
// the wire; Process enforces that at least one identifier is usable.
type Notification struct {
	TransactionID   string   `json:"transaction_id"`
	Reference       string   `json:"reference"`
	OrderNumber     string   `json:"order_number"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"payment_status"`
	PaymentProvider string   `json:"payment_provider"`
	Amount          *float64 `json:"amount"`
}

// Application status vocabulary. Every provider status maps to exactly one
// of these.
const (
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
	StatusPending   = "pending"
)

// Conflict key columns usable for the upsert.
const (
	KeyOrderNumber   = "order_number"
	KeyTransactionID = "transaction_id"
)

const DefaultProvider = "feexpay"

// OrderUpsert is the row written to the orders table.
type OrderUpsert struct {
	OrderNumber      string   `json:"order_number,omitempty"`
	TransactionID    string   `json:"transaction_id,omitempty"`
	PaymentReference string   `json:"payment_reference,omitempty"`
	PaymentProvider  string   `json:"payment_provider"`
	PaymentStatus    string   `json:"payment_status,omitempty"`
	Status           string   `json:"status"`
	TotalAmount      *float64 `json:"total_amount,omitempty"`
}

// Receipt describes the write a notification produced.
type Receipt struct {
	KeyField string `json:"key_field"`
	KeyValue string `json:"key_value"`
	Status   string `json:"status"`
}

var (
	ErrMissingIdentifier = errors.New("missing_identifier")
	ErrInvalidPayload    = errors.New("invalid_payload")
)
