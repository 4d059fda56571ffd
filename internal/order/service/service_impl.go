package service

import (
	"context"
	"strings"
	"time"

	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/observability/logger"
	obsmetrics "github.com/tokpa/feexgate/internal/observability/metrics"
	"github.com/tokpa/feexgate/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Store   domain.Store
	Mapping *config.MappingHolder
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	store   domain.Store
	mapping *config.MappingHolder
	metrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("order"),
		store:   p.Store,
		mapping: p.Mapping,
		metrics: p.Metrics,
	}
}

// Process validates the notification, normalizes its status and performs
// exactly one upsert against the orders table. Rejected notifications
// produce zero store calls.
func (s *Service) Process(ctx context.Context, n domain.Notification) (*domain.Receipt, error) {
	keyField, keyValue := resolveIdentifier(n)
	if keyValue == "" {
		s.metrics.RecordWebhookEvent(ctx, "", "rejected")
		return nil, domain.ErrMissingIdentifier
	}

	providerStatus := firstNonEmpty(n.Status, n.PaymentStatus)
	status := MapProviderStatus(providerStatus, s.mapping.Get())

	row := s.buildUpsert(n, status, providerStatus)

	start := time.Now()
	err := s.store.UpsertOrder(ctx, keyField, row)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordStoreUpsert(ctx, keyField, "error", elapsed)
		s.metrics.RecordWebhookEvent(ctx, status, "store_error")
		logger.WithContext(ctx, s.log).Error("order upsert failed",
			zap.String("key_field", keyField),
			zap.String("status", status),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.RecordStoreUpsert(ctx, keyField, "ok", elapsed)
	s.metrics.RecordWebhookEvent(ctx, status, "processed")
	logger.WithContext(ctx, s.log).Info("order upserted",
		zap.String("key_field", keyField),
		zap.String("status", status),
		zap.String("provider_status", providerStatus),
	)

	return &domain.Receipt{
		KeyField: keyField,
		KeyValue: keyValue,
		Status:   status,
	}, nil
}

// resolveIdentifier picks the upsert conflict key: order_number first, then
// transaction_id, then reference. A bare reference still keys the row on
// the transaction_id column, mirroring how the provider reuses the field.
func resolveIdentifier(n domain.Notification) (field, value string) {
	if v := strings.TrimSpace(n.OrderNumber); v != "" {
		return domain.KeyOrderNumber, v
	}
	if v := strings.TrimSpace(n.TransactionID); v != "" {
		return domain.KeyTransactionID, v
	}
	if v := strings.TrimSpace(n.Reference); v != "" {
		return domain.KeyTransactionID, v
	}
	return "", ""
}

func (s *Service) buildUpsert(n domain.Notification, status, providerStatus string) domain.OrderUpsert {
	txID := firstNonEmpty(n.TransactionID, n.Reference)
	orderRef := firstNonEmpty(n.OrderNumber, n.Reference)
	provider := firstNonEmpty(n.PaymentProvider, domain.DefaultProvider)

	return domain.OrderUpsert{
		OrderNumber:      strings.TrimSpace(n.OrderNumber),
		TransactionID:    txID,
		PaymentReference: orderRef,
		PaymentProvider:  provider,
		PaymentStatus:    strings.TrimSpace(providerStatus),
		Status:           status,
		TotalAmount:      n.Amount,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
