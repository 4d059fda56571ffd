package domain

import "context"

// Service turns one provider notification into at most one store write.
type Service interface {
	Process(ctx context.Context, n Notification) (*Receipt, error)
}

// Store is the writer-only client of the external orders table.
type Store interface {
	UpsertOrder(ctx context.Context, conflictKey string, row OrderUpsert) error
}
