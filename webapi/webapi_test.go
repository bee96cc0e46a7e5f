package webapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albahri/sarraf/internal/fixtures"
	"github.com/albahri/sarraf/pkg/config"
	"github.com/albahri/sarraf/pkg/provider/exchange"
	customersvc "github.com/albahri/sarraf/pkg/service/customer"
	movementsvc "github.com/albahri/sarraf/pkg/service/movement"
	"github.com/albahri/sarraf/pkg/service/sequence"
	statementsvc "github.com/albahri/sarraf/pkg/service/statement"
	transfersvc "github.com/albahri/sarraf/pkg/service/transfer"
	"github.com/albahri/sarraf/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *fixtures.MemoryUnitOfWork) {
	t.Helper()
	uow := fixtures.NewMemoryUnitOfWork()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	numbers := sequence.NewULIDGenerator()

	cfg := &config.App{
		Env:       "test",
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	app := webapi.NewApp(cfg, webapi.Deps{
		Customers:  customersvc.NewService(uow, logger),
		Movements:  movementsvc.NewService(uow, numbers, logger),
		Transfers:  transfersvc.NewService(uow, numbers, 24*time.Hour, logger),
		Statements: statementsvc.NewService(uow, logger),
		Rates:      exchange.NewStaticSource(),
	})
	return app, uow
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func createCustomer(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/customers", fiber.Map{"name": name}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	return data["id"].(string)
}

func TestCustomerLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	id := createCustomer(t, app, "Ahmed")

	resp, body := doJSON(t, app, fiber.MethodGet, "/customers/"+id, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Ahmed", data["name"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/customers/not-a-uuid", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecordMovementAndBalance(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createCustomer(t, app, "Ahmed")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", fiber.Map{
		"customer_id":   id,
		"movement_type": "incoming",
		"amount":        100,
		"currency":      "USD",
		"commission":    5,
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/customers/"+id+"/balance?currency=USD", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.InDelta(t, 95.0, data["balance"].(float64), 0.001, "balance reflects the netted amount")
	assert.Equal(t, "له", data["label"])
}

func TestRecordMovement_ValidationErrors(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createCustomer(t, app, "Ahmed")

	t.Run("commission swallows amount", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", fiber.Map{
			"customer_id":   id,
			"movement_type": "incoming",
			"amount":        100,
			"currency":      "USD",
			"commission":    100,
		}, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad movement type", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", fiber.Map{
			"customer_id":   id,
			"movement_type": "sideways",
			"amount":        100,
			"currency":      "USD",
		}, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", fiber.Map{
			"customer_id":   id,
			"movement_type": "incoming",
			"amount":        100,
			"currency":      "XXX",
		}, nil)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestTransfer_EndToEnd(t *testing.T) {
	app, _ := setupTestApp(t)
	from := createCustomer(t, app, "Sender")
	to := createCustomer(t, app, "Receiver")

	payload := fiber.Map{
		"from_customer_id":     from,
		"to_customer_id":       to,
		"amount":               100,
		"currency":             "USD",
		"commission":           5,
		"commission_recipient": "to",
	}
	headers := map[string]string{"X-Idempotency-Key": "req-1"}

	resp, body := doJSON(t, app, fiber.MethodPost, "/transfers", payload, headers)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "customer_to_customer", data["direction"])
	assert.Len(t, data["movements"].([]any), 2)

	t.Run("duplicate key conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/transfers", payload, headers)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("receiver got amount plus commission", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/customers/"+to+"/balance?currency=USD", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.InDelta(t, 105.0, data["balance"].(float64), 0.001)
	})
}

func TestStatementEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createCustomer(t, app, "Ahmed")

	for _, m := range []fiber.Map{
		{"customer_id": id, "movement_type": "incoming", "amount": 100, "currency": "USD"},
		{"customer_id": id, "movement_type": "outgoing", "amount": 30, "currency": "USD"},
		{"customer_id": id, "movement_type": "incoming", "amount": 20, "currency": "USD"},
	} {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", m, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/customers/"+id+"/statement?currency=USD", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	lines := body["data"].([]any)
	require.Len(t, lines, 3)

	balances := make([]float64, 0, 3)
	for _, l := range lines {
		balances = append(balances, l.(map[string]any)["balance_after"].(float64))
	}
	assert.Equal(t, []float64{100, 70, 90}, balances)
}

func TestReportsAndRates(t *testing.T) {
	app, _ := setupTestApp(t)
	id := createCustomer(t, app, "Ahmed")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/movements", fiber.Map{
		"customer_id":   id,
		"movement_type": "outgoing",
		"amount":        500,
		"currency":      "USD",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("debts", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/reports/debts", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		owed := data["owed_to_shop"].(map[string]any)
		assert.InDelta(t, 500.0, owed["USD"].(float64), 0.001)
	})

	t.Run("position", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/reports/position", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		usd := data["USD"].(map[string]any)
		assert.InDelta(t, 500.0, usd["amount"].(float64), 0.001)
	})

	t.Run("cashflow", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/reports/cashflow", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		usd := data["currencies"].(map[string]any)["USD"].(map[string]any)
		assert.InDelta(t, 500.0, usd["total_received"].(float64), 0.001)
	})

	t.Run("currencies", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/currencies", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["data"].([]any))
	})

	t.Run("rates", func(t *testing.T) {
		resp, body := doJSON(t, app, fiber.MethodGet, "/rates/USD/SAR?amount=100", nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "3.75", data["rate"])
		assert.Equal(t, "375", data["converted"])
	})

	t.Run("unknown rate pair", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/rates/USD/JPY", nil, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestMetricsExposed(t *testing.T) {
	app, _ := setupTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
