// Package ledgerbridge binds the ledger client port to the HTTP signer
// bridge. The bridge owns the oracle key and the transaction signing
// and broadcast; this client only ships validated confirmation payloads
// to it and reports the resulting transaction reference.
package ledgerbridge

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deliveryoracle/internal/core/ports"
	"deliveryoracle/internal/pkg/errs"
)

const defaultTimeout = 30 * time.Second

// ErrBridgeRejected is returned when the signer bridge answers with a
// non-success status. The underlying transaction may or may not have
// been broadcast; callers must treat the outcome as unknown.
var ErrBridgeRejected = errors.New("signer bridge rejected the confirmation")

// Config holds the signer bridge connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements the LedgerClient port against the signer bridge.
// Configuration is validated at construction, so a misconfigured
// bridge URL fails at startup rather than on the first milestone.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a signer bridge client. Returns an error when the
// base URL is absent or unparsable, or the API key is empty.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("ledger bridge base url")
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("ledger bridge base url", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, errs.NewValueIsInvalidError("ledger bridge base url")
	}

	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errs.NewValueIsRequiredError("ledger bridge api key")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Transport: &loggingRoundTripper{proxied: http.DefaultTransport, logger: logger},
			Timeout:   timeout,
		},
		logger: logger,
	}, nil
}

type pickupConfirmationDTO struct {
	ShipmentHash      string `json:"shipmentHash"`
	OrderID           uint64 `json:"orderId"`
	LocationHash      string `json:"locationHash"`
	ClaimedTS         int64  `json:"claimedTs"`
	CourierSignature  string `json:"courierSignature"`
	SupplierSignature string `json:"supplierSignature"`
}

type dropConfirmationDTO struct {
	ShipmentHash     string `json:"shipmentHash"`
	OrderID          uint64 `json:"orderId"`
	LocationHash     string `json:"locationHash"`
	ClaimedTS        int64  `json:"claimedTs"`
	DistanceMeters   uint64 `json:"distanceMeters"`
	CourierSignature string `json:"courierSignature"`
	BuyerSignature   string `json:"buyerSignature"`
	LineItems        string `json:"lineItems"`
	MetadataURI      string `json:"metadataUri"`
}

type confirmationResponseDTO struct {
	Tx string `json:"tx"`
}

// ConfirmPickup submits the pickup confirmation to the bridge.
func (c *Client) ConfirmPickup(ctx context.Context, confirmation ports.PickupConfirmation) (string, error) {
	payload := pickupConfirmationDTO{
		ShipmentHash:      hexPrefixed(confirmation.ShipmentHash),
		OrderID:           confirmation.ChainOrderID,
		LocationHash:      hexPrefixed(confirmation.LocationHash),
		ClaimedTS:         confirmation.ClaimedTS,
		CourierSignature:  hexPrefixed(confirmation.CourierSig),
		SupplierSignature: hexPrefixed(confirmation.SupplierSig),
	}
	return c.post(ctx, "/v1/confirmations/pickup", payload)
}

// ConfirmDrop submits the drop confirmation to the bridge.
func (c *Client) ConfirmDrop(ctx context.Context, confirmation ports.DropConfirmation) (string, error) {
	payload := dropConfirmationDTO{
		ShipmentHash:     hexPrefixed(confirmation.ShipmentHash),
		OrderID:          confirmation.ChainOrderID,
		LocationHash:     hexPrefixed(confirmation.LocationHash),
		ClaimedTS:        confirmation.ClaimedTS,
		DistanceMeters:   confirmation.DistanceM,
		CourierSignature: hexPrefixed(confirmation.CourierSig),
		BuyerSignature:   hexPrefixed(confirmation.BuyerSig),
		LineItems:        confirmation.LineItemsJSON,
		MetadataURI:      confirmation.MetadataURI,
	}
	return c.post(ctx, "/v1/confirmations/drop", payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d: %s",
			ErrBridgeRejected, resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var parsed confirmationResponseDTO
	if err = json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unreadable response: %w", ErrBridgeRejected, err)
	}
	if parsed.Tx == "" {
		return "", fmt.Errorf("%w: response missing tx reference", ErrBridgeRejected)
	}

	return parsed.Tx, nil
}

func hexPrefixed(value []byte) string {
	return "0x" + hex.EncodeToString(value)
}

// loggingRoundTripper captures request timing and status for debugging.
type loggingRoundTripper struct {
	proxied http.RoundTripper
	logger  *slog.Logger
}

func (lrt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := lrt.proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		lrt.logger.Error("bridge request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, err
	}

	lrt.logger.Debug("bridge request completed",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", duration))

	return resp, nil
}
