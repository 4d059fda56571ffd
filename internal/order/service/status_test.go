package service

import (
	"testing"

	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/order/domain"
)

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SUCCESSFUL", domain.StatusConfirmed},
		{"SUCCESS", domain.StatusConfirmed},
		{"COMPLETED", domain.StatusConfirmed},
		{"successful", domain.StatusConfirmed},
		{"  Success  ", domain.StatusConfirmed},
		{"FAILED", domain.StatusFailed},
		{"FAIL", domain.StatusFailed},
		{"CANCELED", domain.StatusFailed},
		{"CANCELLED", domain.StatusFailed},
		{"failed", domain.StatusFailed},
		{"PENDING", domain.StatusPending},
		{"PENDING_REVIEW", domain.StatusPending},
		{"REFUNDED", domain.StatusPending},
		{"", domain.StatusPending},
		{"   ", domain.StatusPending},
		{"garbage", domain.StatusPending},
	}

	for _, tc := range tests {
		if got := MapProviderStatus(tc.in, config.MappingConfig{}); got != tc.want {
			t.Errorf("MapProviderStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapProviderStatusOverrides(t *testing.T) {
	overrides := config.MappingConfig{
		Confirmed: []string{"PAID"},
		Failed:    []string{"expired"},
	}

	if got := MapProviderStatus("paid", overrides); got != domain.StatusConfirmed {
		t.Errorf("override PAID = %q, want confirmed", got)
	}
	if got := MapProviderStatus("EXPIRED", overrides); got != domain.StatusFailed {
		t.Errorf("override EXPIRED = %q, want failed", got)
	}
	// Overrides extend the built-in sets, they never replace them.
	if got := MapProviderStatus("SUCCESSFUL", overrides); got != domain.StatusConfirmed {
		t.Errorf("builtin SUCCESSFUL with overrides = %q, want confirmed", got)
	}
	if got := MapProviderStatus("UNKNOWN", overrides); got != domain.StatusPending {
		t.Errorf("unknown with overrides = %q, want pending", got)
	}
}
