package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/order/domain"
	orderservice "github.com/tokpa/feexgate/internal/order/service"
	"go.uber.org/zap"
)

type fakeStore struct {
	calls []upsertCall
	err   error
}

type upsertCall struct {
	conflictKey string
	row         domain.OrderUpsert
}

func (f *fakeStore) UpsertOrder(ctx context.Context, conflictKey string, row domain.OrderUpsert) error {
	_ = ctx
	f.calls = append(f.calls, upsertCall{conflictKey: conflictKey, row: row})
	return f.err
}

func newTestService(store domain.Store) domain.Service {
	return orderservice.NewService(orderservice.Params{
		Log:     zap.NewNop(),
		Store:   store,
		Mapping: config.NewStaticMappingHolder(config.DefaultMappingConfig()),
	})
}

func floatPtr(v float64) *float64 { return &v }

func TestProcessUpsertsByOrderNumber(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	receipt, err := svc.Process(context.Background(), domain.Notification{
		TransactionID: "tx_123",
		OrderNumber:   "EP123ABC",
		Status:        "SUCCESSFUL",
		Amount:        floatPtr(15000),
	})
	assert.NoError(t, err)
	assert.Equal(t, &domain.Receipt{
		KeyField: domain.KeyOrderNumber,
		KeyValue: "EP123ABC",
		Status:   domain.StatusConfirmed,
	}, receipt)

	assert.Len(t, store.calls, 1)
	call := store.calls[0]
	assert.Equal(t, domain.KeyOrderNumber, call.conflictKey)
	assert.Equal(t, "EP123ABC", call.row.OrderNumber)
	assert.Equal(t, "tx_123", call.row.TransactionID)
	assert.Equal(t, domain.StatusConfirmed, call.row.Status)
	assert.Equal(t, "SUCCESSFUL", call.row.PaymentStatus)
	assert.Equal(t, domain.DefaultProvider, call.row.PaymentProvider)
	assert.Equal(t, float64(15000), *call.row.TotalAmount)
}

func TestProcessFallsBackToTransactionID(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	receipt, err := svc.Process(context.Background(), domain.Notification{
		TransactionID: "tx_999",
		Status:        "FAILED",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.KeyTransactionID, receipt.KeyField)
	assert.Equal(t, "tx_999", receipt.KeyValue)
	assert.Equal(t, domain.StatusFailed, receipt.Status)

	assert.Len(t, store.calls, 1)
	assert.Equal(t, domain.KeyTransactionID, store.calls[0].conflictKey)
	assert.Empty(t, store.calls[0].row.OrderNumber)
	assert.Nil(t, store.calls[0].row.TotalAmount)
}

func TestProcessReferenceKeysTransactionColumn(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	receipt, err := svc.Process(context.Background(), domain.Notification{
		Reference: "ref_42",
		Status:    "SUCCESS",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.KeyTransactionID, receipt.KeyField)
	assert.Equal(t, "ref_42", receipt.KeyValue)

	assert.Len(t, store.calls, 1)
	assert.Equal(t, "ref_42", store.calls[0].row.TransactionID)
	assert.Equal(t, "ref_42", store.calls[0].row.PaymentReference)
}

func TestProcessMissingIdentifier(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Process(context.Background(), domain.Notification{Status: "PENDING_REVIEW"})
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
	assert.Empty(t, store.calls, "rejected notifications must not reach the store")

	_, err = svc.Process(context.Background(), domain.Notification{
		OrderNumber:   "   ",
		TransactionID: "",
		Reference:     " ",
	})
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
	assert.Empty(t, store.calls)
}

func TestProcessMissingStatusMapsToPending(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	receipt, err := svc.Process(context.Background(), domain.Notification{TransactionID: "tx_1"})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, receipt.Status)
	assert.Equal(t, "", store.calls[0].row.PaymentStatus)
}

func TestProcessPaymentStatusFallback(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	receipt, err := svc.Process(context.Background(), domain.Notification{
		TransactionID: "tx_2",
		PaymentStatus: "COMPLETED",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, receipt.Status)
	assert.Equal(t, "COMPLETED", store.calls[0].row.PaymentStatus)
}

func TestProcessKeepsProviderName(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Process(context.Background(), domain.Notification{
		TransactionID:   "tx_3",
		PaymentProvider: "feexpay_togo",
	})
	assert.NoError(t, err)
	assert.Equal(t, "feexpay_togo", store.calls[0].row.PaymentProvider)
}

func TestProcessPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("store_unavailable: status 503")
	store := &fakeStore{err: storeErr}
	svc := newTestService(store)

	_, err := svc.Process(context.Background(), domain.Notification{TransactionID: "tx_4", Status: "SUCCESSFUL"})
	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, store.calls, 1, "exactly one store call even on failure, no retries")
}

func TestProcessIdempotentPayloads(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	n := domain.Notification{
		TransactionID: "tx_123",
		OrderNumber:   "EP123ABC",
		Status:        "SUCCESSFUL",
		Amount:        floatPtr(15000),
	}

	first, err := svc.Process(context.Background(), n)
	assert.NoError(t, err)
	second, err := svc.Process(context.Background(), n)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.calls, 2)
	assert.Equal(t, store.calls[0], store.calls[1], "duplicate deliveries must produce identical writes")
}
