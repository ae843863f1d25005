//go:build unit

package bank_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-orchestrator/internal/infra/bank"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedTransfer struct {
	method         string
	path           string
	idempotencyKey string
	body           map[string]any
}

func newBank(t *testing.T, status int, body string) (*bank.Client, *recordedTransfer) {
	t.Helper()
	rec := &recordedTransfer{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.idempotencyKey = r.Header.Get("Idempotency-Key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &rec.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := config.BankConfig{BaseURL: srv.URL + "/", Timeout: time.Second}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bank.NewClient(cfg, srv.Client(), logger), rec
}

func transfer() shared.Transfer {
	return shared.Transfer{
		From:           1001,
		To:             1,
		Amount:         decimal.RequireFromString("200"),
		IdempotencyKey: "checkout:p:i:debit",
		Reference:      "purchase p",
	}
}

func TestClient_Transfer(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{name: "success: explicit success flag", status: http.StatusOK, body: `{"success":true,"transferId":"t-1"}`, want: true},
		{name: "success: empty 2xx body", status: http.StatusCreated, body: ``, want: true},
		{name: "success: body without flag", status: http.StatusOK, body: `{"transferId":"t-2"}`, want: true},
		{name: "failure: declined", status: http.StatusOK, body: `{"success":false,"message":"insufficient funds"}`, want: false},
		{name: "failure: malformed body", status: http.StatusOK, body: `{"success":`, want: false},
		{name: "failure: client error", status: http.StatusUnprocessableEntity, body: `{"message":"no such account"}`, want: false},
		{name: "failure: server error", status: http.StatusBadGateway, body: ``, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, rec := newBank(t, tc.status, tc.body)

			got := client.Transfer(context.Background(), transfer())

			assert.Equal(t, tc.want, got)
			assert.Equal(t, http.MethodPost, rec.method)
			assert.Equal(t, "/transfers", rec.path)
			assert.Equal(t, "checkout:p:i:debit", rec.idempotencyKey)
			require.NotNil(t, rec.body)
			assert.Equal(t, "200.00", rec.body["amount"])
			assert.EqualValues(t, 1001, rec.body["fromAccount"])
			assert.EqualValues(t, 1, rec.body["toAccount"])
		})
	}
}

func TestClient_Transfer_InvalidInputNeverCallsBank(t *testing.T) {
	client, rec := newBank(t, http.StatusOK, `{"success":true}`)

	tr := transfer()
	tr.Amount = decimal.Zero

	assert.False(t, client.Transfer(context.Background(), tr))
	assert.Empty(t, rec.method)
}

func TestClient_Transfer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := bank.NewClient(config.BankConfig{BaseURL: url, Timeout: time.Second}, http.DefaultClient,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, client.Transfer(context.Background(), transfer()))
}
