package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tallyhq/tally/internal/clock"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage/jsonfile"
)

// setupTestServer builds a server over a fresh file-backed ledger.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := jsonfile.New(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ledger := service.New(context.Background(), store, clock.NewSystemClock())
	server := httptest.NewServer(NewRouter(ledger))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestCreateAndGetUser(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/users", map[string]any{"name": "Alice"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody[models.User](t, resp)
	if created.ID != 1 || created.Name != "Alice" {
		t.Errorf("created user = %+v, want id=1 name=Alice", created)
	}

	getResp, err := http.Get(server.URL + "/users/1")
	if err != nil {
		t.Fatalf("GET /users/1 failed: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", getResp.StatusCode)
	}
	fetched := decodeBody[models.User](t, getResp)
	if fetched != created {
		t.Errorf("fetched user = %+v, want %+v", fetched, created)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/users/99")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody[map[string]string](t, resp)
	if body["detail"] != "user with ID 99 not found" {
		t.Errorf("detail = %q, want %q", body["detail"], "user with ID 99 not found")
	}
}

func TestGetUser_InvalidID(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/users/abc")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateUser_EmptyName(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/users", map[string]any{"name": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	server := setupTestServer(t)
	postJSON(t, server.URL+"/users", map[string]any{"name": "Alice"}).Body.Close()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantDetail string
	}{
		{
			name:       "non-positive amount",
			body:       map[string]any{"description": "x", "amount": 0, "paid_by_user_id": 1, "participants": []int64{1}},
			wantStatus: http.StatusBadRequest,
			wantDetail: "amount must be greater than 0",
		},
		{
			name:       "no participants",
			body:       map[string]any{"description": "x", "amount": 10, "paid_by_user_id": 1, "participants": []int64{}},
			wantStatus: http.StatusBadRequest,
			wantDetail: "must have at least one participant",
		},
		{
			name:       "unknown payer",
			body:       map[string]any{"description": "x", "amount": 10, "paid_by_user_id": 9, "participants": []int64{1}},
			wantStatus: http.StatusNotFound,
			wantDetail: "user with ID 9 not found",
		},
		{
			name:       "unknown participant",
			body:       map[string]any{"description": "x", "amount": 10, "paid_by_user_id": 1, "participants": []int64{1, 5}},
			wantStatus: http.StatusNotFound,
			wantDetail: "user with ID 5 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/expenses", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decodeBody[map[string]string](t, resp)
			if body["detail"] != tt.wantDetail {
				t.Errorf("detail = %q, want %q", body["detail"], tt.wantDetail)
			}
		})
	}
}

func TestCreateExpense_MalformedBody(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Post(server.URL+"/expenses", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExpenseAndBalanceFlow(t *testing.T) {
	server := setupTestServer(t)

	postJSON(t, server.URL+"/users", map[string]any{"name": "Alice"}).Body.Close()
	postJSON(t, server.URL+"/users", map[string]any{"name": "Bob"}).Body.Close()

	resp := postJSON(t, server.URL+"/expenses", map[string]any{
		"description":     "Dinner",
		"amount":          50.0,
		"paid_by_user_id": 1,
		"participants":    []int64{1, 2},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	expense := decodeBody[models.Expense](t, resp)
	if expense.ID != 1 || expense.Amount != 50.0 {
		t.Errorf("expense = %+v, want id=1 amount=50", expense)
	}
	if expense.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	listResp, err := http.Get(server.URL + "/expenses")
	if err != nil {
		t.Fatalf("GET /expenses failed: %v", err)
	}
	expenses := decodeBody[[]models.Expense](t, listResp)
	if len(expenses) != 1 {
		t.Fatalf("len(expenses) = %d, want 1", len(expenses))
	}

	balResp, err := http.Get(server.URL + "/balances")
	if err != nil {
		t.Fatalf("GET /balances failed: %v", err)
	}
	balances := decodeBody[[]models.UserBalance](t, balResp)
	if len(balances) != 2 {
		t.Fatalf("len(balances) = %d, want 2", len(balances))
	}
	if balances[0].Balance != 25.0 || balances[1].Balance != -25.0 {
		t.Errorf("balances = %+v, want +25.0 / -25.0", balances)
	}
}

func TestListEndpoints_EmptyState(t *testing.T) {
	server := setupTestServer(t)

	for _, path := range []string{"/users", "/expenses", "/balances"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
		var items []json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			t.Errorf("GET %s did not return a JSON array: %v", path, err)
		}
		resp.Body.Close()
		if len(items) != 0 {
			t.Errorf("GET %s returned %d items, want 0", path, len(items))
		}
	}
}
