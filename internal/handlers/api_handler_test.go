package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"transport_manager/internal/auth"
	"transport_manager/internal/export"
	"transport_manager/internal/models"
	"transport_manager/internal/repository/memstore"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const adminPassword = "correct-horse"

var testNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.New(memstore.New(), nil, func() time.Time { return testNow })
	if err := svc.Users.EnsureAdmin(context.Background(), adminPassword); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	router := gin.New()
	NewAPIHandler(svc, auth.NewTokenManager("test-secret", time.Hour)).Register(router)

	s := &testServer{t: t, router: router}
	s.token = s.login("admin", adminPassword)
	return s
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.doAs(s.token, method, path, body)
}

func (s *testServer) doAs(token, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.doAs("", http.MethodPost, "/api/auth/login", gin.H{"username": username, "password": password})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: status %d: %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &resp)
	return resp.Token
}

// create posts body and decodes the 201 response into out.
func (s *testServer) create(path string, body, out any) {
	s.t.Helper()
	w := s.do(http.MethodPost, path, body)
	if w.Code != http.StatusCreated {
		s.t.Fatalf("POST %s: status %d: %s", path, w.Code, w.Body.String())
	}
	decode(s.t, w, out)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.doAs("", http.MethodGet, "/health", nil), http.StatusOK)
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.doAs("", http.MethodGet, "/api/orders", nil), http.StatusUnauthorized)
	expectStatus(t, s.doAs("garbage", http.MethodGet, "/api/orders", nil), http.StatusUnauthorized)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	w := s.doAs("", http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "nope"})
	expectStatus(t, w, http.StatusUnauthorized)
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	var user models.User
	s.create("/api/users", gin.H{
		"username": "clerk",
		"email":    "clerk@example.com",
		"password": "clerk-password",
		"role":     "user",
	}, &user)
	if user.Role != string(models.Users) {
		t.Fatalf("role = %q", user.Role)
	}

	clerk := s.login("clerk", "clerk-password")
	expectStatus(t, s.doAs(clerk, http.MethodGet, "/api/users", nil), http.StatusForbidden)
	expectStatus(t, s.doAs(clerk, http.MethodGet, "/api/clients", nil), http.StatusOK)
}

func TestOnlySuperAdminGrantsAdmin(t *testing.T) {
	s := newTestServer(t)

	var office models.User
	s.create("/api/users", gin.H{
		"username": "office",
		"email":    "office@example.com",
		"password": "office-password",
		"role":     "admin",
	}, &office)
	admin := s.login("office", "office-password")

	tests := []struct {
		name string
		role string
		want int
	}{
		{"super admin", "super_admin", http.StatusForbidden},
		{"admin", "admin", http.StatusForbidden},
		{"user", "user", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.doAs(admin, http.MethodPost, "/api/users", gin.H{
				"username": "made-by-admin-" + tt.role,
				"email":    tt.role + "@example.com",
				"password": "long-enough",
				"role":     tt.role,
			})
			expectStatus(t, w, tt.want)
		})
	}
}

func TestOrderPaymentFlow(t *testing.T) {
	s := newTestServer(t)

	var client models.Client
	s.create("/api/clients", gin.H{"name": "Acme"}, &client)
	var product models.Product
	s.create("/api/products", gin.H{"name": "Sand", "unit": "ton"}, &product)
	var lot models.StockLot
	s.create("/api/stock/lots", gin.H{
		"product_id":     product.ID,
		"total_quantity": "10",
		"unit_cost":      "20",
	}, &lot)

	var order models.ClientOrder
	s.create("/api/orders", gin.H{
		"client_id": client.ID,
		"lines": []gin.H{
			{"stock_lot_id": lot.ID, "quantity": "4", "sell_price": "50"},
		},
	}, &order)
	assertDec(t, "total", order.Total, "200")
	assertDec(t, "profit", order.Profit, "120")
	if order.CreatedBy == nil {
		t.Error("created_by not set from token")
	}

	w := s.do(http.MethodPost, "/api/orders/"+itoa(order.ID)+"/lines", gin.H{
		"stock_lot_id": lot.ID, "quantity": "7", "sell_price": "50",
	})
	expectStatus(t, w, http.StatusConflict)

	var avail models.StockAvailability
	w = s.do(http.MethodGet, "/api/stock/lots/"+itoa(lot.ID), nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &avail)
	assertDec(t, "available", avail.Available, "6")

	w = s.do(http.MethodPost, "/api/orders/"+itoa(order.ID)+"/payment", gin.H{"amount": "150", "method": "cash"})
	expectStatus(t, w, http.StatusOK)
	var payment models.PaymentView
	decode(t, w, &payment)
	if payment.Status != models.PaymentPartial {
		t.Errorf("status = %s, want partial", payment.Status)
	}
	assertDec(t, "outstanding", payment.Outstanding, "50")

	var summary models.LedgerSummary
	w = s.do(http.MethodGet, "/api/ledger/summary?owner_kind=client-order", nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &summary)
	assertDec(t, "inflow", summary.Inflow, "150")

	var debts []models.Debt
	w = s.do(http.MethodGet, "/api/debts", nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &debts)
	if len(debts) != 1 {
		t.Fatalf("debts = %d, want 1", len(debts))
	}

	expectStatus(t, s.do(http.MethodDelete, "/api/orders/"+itoa(order.ID), nil), http.StatusConflict)
}

func TestErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing order", http.MethodGet, "/api/orders/999", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/orders/abc", nil, http.StatusBadRequest},
		{"bad date", http.MethodGet, "/api/orders?from=yesterday", nil, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/clients", "not an object", http.StatusBadRequest},
		{"unknown owner kind", http.MethodPost, "/api/ledger", gin.H{
			"direction": "inflow", "amount": "10", "owner_kind": "bogus", "owner_id": 1,
		}, http.StatusBadRequest},
		{"bad direction", http.MethodPost, "/api/ledger", gin.H{
			"direction": "sideways", "amount": "10", "owner_kind": "client-order", "owner_id": 1,
		}, http.StatusBadRequest},
		{"missing owner", http.MethodPost, "/api/ledger", gin.H{
			"direction": "inflow", "amount": "10", "owner_kind": "client-order", "owner_id": 42,
		}, http.StatusUnprocessableEntity},
		{"unknown machine kind", http.MethodGet, "/api/fuel/consumption?machine_kind=boat&machine_id=1", nil, http.StatusBadRequest},
		{"missing machine id", http.MethodGet, "/api/machine-expenses?machine_kind=vehicle", nil, http.StatusBadRequest},
		{"unknown report kind", http.MethodGet, "/api/reports?kind=weekly", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, s.do(tt.method, tt.path, tt.body), tt.want)
		})
	}
}

func TestCatalogUpdateKeepsOmittedFields(t *testing.T) {
	s := newTestServer(t)

	var client models.Client
	s.create("/api/clients", gin.H{"name": "Acme", "phone": "555-0100"}, &client)

	w := s.do(http.MethodPut, "/api/clients/"+itoa(client.ID), gin.H{"email": "ops@acme.test"})
	expectStatus(t, w, http.StatusOK)
	var updated models.Client
	decode(t, w, &updated)
	if updated.ID != client.ID || updated.Phone != "555-0100" || updated.Email != "ops@acme.test" {
		t.Errorf("updated = %+v", updated)
	}

	expectStatus(t, s.do(http.MethodDelete, "/api/clients/"+itoa(client.ID), nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/api/clients/"+itoa(client.ID), nil), http.StatusNotFound)
}

func TestRentalCloseWithoutBody(t *testing.T) {
	s := newTestServer(t)

	var client models.Client
	s.create("/api/clients", gin.H{"name": "Acme"}, &client)
	var crane models.HeavyEquipment
	s.create("/api/equipment", gin.H{"name": "Crane", "daily_rate": "100"}, &crane)

	var rental models.RentalView
	s.create("/api/rentals", gin.H{
		"heavy_equipment_id": crane.ID,
		"client_id":          client.ID,
		"start_date":         "2024-01-08T00:00:00Z",
	}, &rental)

	w := s.do(http.MethodPost, "/api/rentals", gin.H{
		"heavy_equipment_id": crane.ID,
		"client_id":          client.ID,
		"start_date":         "2024-01-09T00:00:00Z",
	})
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodPost, "/api/rentals/"+itoa(rental.ID)+"/close", nil)
	expectStatus(t, w, http.StatusOK)
	var closed models.RentalView
	decode(t, w, &closed)
	if closed.Days != 3 {
		t.Errorf("days = %d, want 3", closed.Days)
	}
	assertDec(t, "billed", closed.BilledAmount, "300")

	expectStatus(t, s.do(http.MethodPost, "/api/rentals/"+itoa(rental.ID)+"/close", nil), http.StatusConflict)
}

func TestFuelDeliveriesWithoutUpperBound(t *testing.T) {
	s := newTestServer(t)

	var supplier models.Supplier
	s.create("/api/suppliers", gin.H{"name": "Fuel Co"}, &supplier)
	// later than any wall clock the test runs under
	later := "2099-01-01T00:00:00Z"
	var delivery models.FuelDelivery
	s.create("/api/fuel/deliveries", gin.H{
		"supplier_id":  supplier.ID,
		"liters":       "100",
		"unit_price":   "1.5",
		"delivered_at": later,
	}, &delivery)

	w := s.do(http.MethodGet, "/api/fuel/deliveries?from=2024-01-10", nil)
	expectStatus(t, w, http.StatusOK)
	var deliveries []models.FuelDelivery
	decode(t, w, &deliveries)
	if len(deliveries) != 1 || deliveries[0].ID != delivery.ID {
		t.Errorf("deliveries = %+v, want the one dated %s", deliveries, later)
	}
}

func TestLedgerExport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/ledger/export?from=2024-01-01&to=2024-01-31", nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ledger_") {
		t.Errorf("content disposition = %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook")
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
