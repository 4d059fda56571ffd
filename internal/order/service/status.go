package service

import (
	"strings"

	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/order/domain"
)

var confirmedStatuses = map[string]struct{}{
	"SUCCESS":    {},
	"SUCCESSFUL": {},
	"COMPLETED":  {},
}

var failedStatuses = map[string]struct{}{
	"FAIL":      {},
	"FAILED":    {},
	"CANCELED":  {},
	"CANCELLED": {},
}

// MapProviderStatus normalizes the provider status vocabulary. The mapping
// is total: any input, including the empty string, yields exactly one
// application status. Overrides extend the built-in synonym sets, they
// never shrink them.
func MapProviderStatus(providerStatus string, overrides config.MappingConfig) string {
	normalized := strings.ToUpper(strings.TrimSpace(providerStatus))

	if _, ok := confirmedStatuses[normalized]; ok {
		return domain.StatusConfirmed
	}
	if containsFold(overrides.Confirmed, normalized) {
		return domain.StatusConfirmed
	}

	if _, ok := failedStatuses[normalized]; ok {
		return domain.StatusFailed
	}
	if containsFold(overrides.Failed, normalized) {
		return domain.StatusFailed
	}

	return domain.StatusPending
}

func containsFold(values []string, normalized string) bool {
	for _, v := range values {
		if strings.ToUpper(strings.TrimSpace(v)) == normalized {
			return true
		}
	}
	return false
}
