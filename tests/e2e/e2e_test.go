//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"
)

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type menuItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type menuListResponse struct {
	Data []menuItemResponse `json:"data"`
}

type orderResponse struct {
	ID    string `json:"id"`
	Total string `json:"total"`
	Lines []struct {
		MenuItemID int64  `json:"menu_item_id"`
		Quantity   int    `json:"quantity"`
		LineTotal  string `json:"line_total"`
	} `json:"lines"`
}

type orderListResponse struct {
	Data []orderResponse `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("TABLESIDE_BASE_URL", "http://localhost:8080")

	// One client with a cookie jar per logical browser session.
	session := newClient(t)
	anonymous := newClient(t)

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "correct-horse-battery"

	// Register starts a session.
	user := register(t, session, baseURL, email, password)
	if user.Email != email {
		t.Fatalf("registered email = %q, want %q", user.Email, email)
	}

	// The session cookie authenticates /me.
	me := getMe(t, session, baseURL, http.StatusOK)
	if me.ID != user.ID {
		t.Fatalf("me.ID = %q, want %q", me.ID, user.ID)
	}

	// The menu is public.
	menu := getMenu(t, anonymous, baseURL)
	if len(menu.Data) == 0 {
		t.Fatal("menu is empty")
	}

	// Orders require a session.
	assertStatus(t, anonymous, http.MethodGet, baseURL+"/api/orders", nil, http.StatusUnauthorized)

	// Place an order for two of the first item.
	item := menu.Data[0]
	order := createOrder(t, session, baseURL, item.ID, 2, http.StatusCreated)
	if len(order.Lines) != 1 || order.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected order lines: %+v", order.Lines)
	}

	// An unknown menu item is a 404.
	body := fmt.Sprintf(`{"lines":[{"menuItemId":%d,"quantity":1}]}`, 999999)
	assertStatus(t, session, http.MethodPost, baseURL+"/api/orders", []byte(body), http.StatusNotFound)

	// The order shows up in the caller's history.
	orders := listOrders(t, session, baseURL)
	if len(orders.Data) == 0 || orders.Data[0].ID != order.ID {
		t.Fatalf("order %s missing from history", order.ID)
	}

	// Fresh login works with the registered credentials.
	relogin := newClient(t)
	login(t, relogin, baseURL, email, password, http.StatusOK)
	getMe(t, relogin, baseURL, http.StatusOK)

	// Wrong password gets the same shape of rejection as unknown email.
	badLogin := newClient(t)
	login(t, badLogin, baseURL, email, "wrong-password", http.StatusUnauthorized)
	login(t, badLogin, baseURL, "nobody@example.com", password, http.StatusUnauthorized)

	// Logout clears the session.
	assertStatus(t, session, http.MethodDelete, baseURL+"/api/auth/logout", nil, http.StatusOK)
	getMe(t, session, baseURL, http.StatusUnauthorized)
}

func TestE2EDuplicateRegistration(t *testing.T) {
	baseURL := envOrDefault("TABLESIDE_BASE_URL", "http://localhost:8080")
	client := newClient(t)

	email := fmt.Sprintf("e2e-dup-%d@example.com", time.Now().UnixNano())
	register(t, client, baseURL, email, "correct-horse-battery")

	body := fmt.Sprintf(`{"email":%q,"password":"correct-horse-battery","name":"Dup"}`, email)
	assertStatus(t, newClient(t), http.MethodPost, baseURL+"/api/auth/register", []byte(body), http.StatusConflict)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
	}
}

func register(t *testing.T, client *http.Client, baseURL, email, password string) *userResponse {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"E2E User"}`, email, password)
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", []byte(body))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body: %s", resp.StatusCode, readBody(t, resp))
	}

	var user userResponse
	decode(t, resp, &user)
	return &user
}

func login(t *testing.T, client *http.Client, baseURL, email, password string, wantStatus int) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", []byte(body))
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("login status = %d, want %d, body: %s", resp.StatusCode, wantStatus, readBody(t, resp))
	}

	if wantStatus == http.StatusUnauthorized {
		var errResp errorResponse
		decode(t, resp, &errResp)
		if errResp.Code != "INVALID_CREDENTIALS" {
			t.Errorf("login error code = %q, want INVALID_CREDENTIALS", errResp.Code)
		}
	}
}

func getMe(t *testing.T, client *http.Client, baseURL string, wantStatus int) *userResponse {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/auth/me", nil)
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("me status = %d, want %d", resp.StatusCode, wantStatus)
	}
	if wantStatus != http.StatusOK {
		return nil
	}

	var user userResponse
	decode(t, resp, &user)
	return &user
}

func getMenu(t *testing.T, client *http.Client, baseURL string) *menuListResponse {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/menu", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("menu status = %d", resp.StatusCode)
	}

	var menu menuListResponse
	decode(t, resp, &menu)
	return &menu
}

func createOrder(t *testing.T, client *http.Client, baseURL string, menuItemID int64, quantity, wantStatus int) *orderResponse {
	t.Helper()
	body := fmt.Sprintf(`{"lines":[{"menuItemId":%d,"quantity":%d}]}`, menuItemID, quantity)
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/orders", []byte(body))
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("create order status = %d, want %d, body: %s", resp.StatusCode, wantStatus, readBody(t, resp))
	}
	if wantStatus != http.StatusCreated {
		return nil
	}

	var order orderResponse
	decode(t, resp, &order)
	return &order
}

func listOrders(t *testing.T, client *http.Client, baseURL string) *orderListResponse {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/orders", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list orders status = %d", resp.StatusCode)
	}

	var orders orderListResponse
	decode(t, resp, &orders)
	return &orders
}

func assertStatus(t *testing.T, client *http.Client, method, url string, body []byte, wantStatus int) {
	t.Helper()
	resp := doJSON(t, client, method, url, body)
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d, body: %s", method, url, resp.StatusCode, wantStatus, readBody(t, resp))
	}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body []byte) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}
