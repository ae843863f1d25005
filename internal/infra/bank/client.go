package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName        = "booking-orchestrator/bank"
	idempotencyHeader = "Idempotency-Key"
)

type transferRequest struct {
	FromAccount int64  `json:"fromAccount"`
	ToAccount   int64  `json:"toAccount"`
	Amount      string `json:"amount"`
	Reference   string `json:"reference,omitempty"`
}

type transferResponse struct {
	Success    *bool  `json:"success"`
	TransferID string `json:"transferId"`
	Message    string `json:"message"`
}

// Client moves funds through the bank transfer API. It never returns an error:
// every failure is logged and reported as false.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewClient(cfg config.BankConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

func (c *Client) Transfer(ctx context.Context, t shared.Transfer) bool {
	ctx, span := c.tracer.Start(ctx, "bank.transfer",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int64("bank.from", t.From),
			attribute.Int64("bank.to", t.To),
			attribute.String("bank.amount", t.Amount.StringFixed(2)),
			attribute.String("bank.idempotency_key", t.IdempotencyKey),
		),
	)
	defer span.End()

	log := c.logger.With(
		slog.Int64("from", t.From),
		slog.Int64("to", t.To),
		slog.String("amount", t.Amount.StringFixed(2)),
		slog.String("idempotency_key", t.IdempotencyKey),
	)

	fail := func(msg string, err error) bool {
		attrs := []any{}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, msg)
		log.ErrorContext(ctx, msg, attrs...)
		return false
	}

	if t.From <= 0 || t.To <= 0 || !t.Amount.IsPositive() {
		return fail("bank transfer rejected locally: invalid accounts or amount", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(transferRequest{
		FromAccount: t.From,
		ToAccount:   t.To,
		Amount:      t.Amount.StringFixed(2),
		Reference:   t.Reference,
	})
	if err != nil {
		return fail("bank transfer encode failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return fail("bank transfer request build failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.IdempotencyKey != "" {
		req.Header.Set(idempotencyHeader, t.IdempotencyKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail("bank transfer call failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fail("bank transfer read failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.ErrorContext(ctx, "bank transfer refused",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return false
	}

	// An empty 2xx body counts as success
	if len(bytes.TrimSpace(raw)) == 0 {
		log.InfoContext(ctx, "bank transfer completed")
		return true
	}
	var out transferResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fail("bank transfer response malformed", err)
	}
	if out.Success != nil && !*out.Success {
		log.ErrorContext(ctx, "bank transfer declined", slog.String("message", out.Message))
		span.SetStatus(codes.Error, "declined")
		return false
	}

	log.InfoContext(ctx, "bank transfer completed", slog.String("transfer_id", out.TransferID))
	return true
}
