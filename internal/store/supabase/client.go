package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tokpa/feexgate/internal/config"
	"github.com/tokpa/feexgate/internal/order/domain"
	"go.uber.org/zap"
)

// ErrUnavailable covers every failure of the hosted store: transport
// errors, timeouts and non-2xx responses. The caller surfaces it as a 5xx
// and relies on the webhook sender to retry.
var ErrUnavailable = errors.New("store_unavailable")

const ordersTable = "orders"

// Client is a writer-only PostgREST client for the hosted orders table.
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	log        *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.StoreURL), "/"),
		serviceKey: strings.TrimSpace(cfg.StoreServiceKey),
		client:     &http.Client{Timeout: timeout},
		log:        log.Named("store.supabase"),
	}
}

// UpsertOrder inserts or updates one row keyed on conflictKey. The store
// resolves the conflict server-side, so the write never reads prior state
// and repeated deliveries converge to the same row.
func (c *Client) UpsertOrder(ctx context.Context, conflictKey string, row domain.OrderUpsert) error {
	return c.upsert(ctx, ordersTable, conflictKey, row)
}

func (c *Client) upsert(ctx context.Context, table, conflictKey string, row any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?on_conflict=%s", c.baseURL, table, url.QueryEscape(conflictKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := readErrorDetail(resp.Body)
		c.log.Warn("store upsert rejected",
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return nil
}

// readErrorDetail extracts PostgREST's error message for the log line,
// bounded so a misbehaving upstream cannot flood memory.
func readErrorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}

	var pgErr struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Message != "" {
		return pgErr.Message
	}
	return string(body)
}
