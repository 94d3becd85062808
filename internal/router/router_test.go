package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizledger/internal/config"
	"bizledger/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "bizledger",
			ExpireHours: 1,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
		App:      config.AppConfig{ReminderHorizonDays: 14},
	}
	return SetupRouter(cfg, db)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginAndAccountFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "owner",
		"password": "Passw0rd",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "owner",
		"password": "Passw0rd",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	token := loginResp.Data.Token
	if token == "" {
		t.Fatal("login did not return a token")
	}

	// accounts require the token
	w = doJSON(t, r, http.MethodGet, "/api/accounts", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/accounts", token, map[string]interface{}{
		"name":       "Checking",
		"balance":    "100",
		"commission": "0.05",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create account status = %d, body %s", w.Code, w.Body.String())
	}

	var accResp struct {
		Data struct {
			Account struct {
				ID string `json:"ID"`
			} `json:"account"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &accResp); err != nil {
		t.Fatalf("decode account response: %v", err)
	}
	if accResp.Data.Account.ID == "" {
		t.Fatal("create account did not return an id")
	}

	// income against the new account applies the commission split
	w = doJSON(t, r, http.MethodPost, "/api/incomes", token, map[string]interface{}{
		"accountId":             accResp.Data.Account.ID,
		"amountPaid":            "200",
		"totalContractedAmount": "200",
		"date":                  "2025-06-15",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create income status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/accounts/"+accResp.Data.Account.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get account status = %d", w.Code)
	}
	var getResp struct {
		Data struct {
			Account struct {
				Balance string `json:"Balance"`
			} `json:"account"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &getResp); err != nil {
		t.Fatalf("decode get account response: %v", err)
	}
	if getResp.Data.Account.Balance != "290" {
		t.Errorf("balance = %s, want 290", getResp.Data.Account.Balance)
	}
}

func TestValidationErrorSurfacesMessages(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "owner",
		"password": "Passw0rd",
	})
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "owner",
		"password": "Passw0rd",
	})
	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	// transfer to itself: rejected with a message list, nothing mutated
	w = doJSON(t, r, http.MethodPost, "/api/transactions", loginResp.Data.Token, map[string]interface{}{
		"type":                 "accountTransfer",
		"accountId":            "x",
		"destinationAccountId": "x",
		"amount":               "10",
		"date":                 "2025-06-15",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	var errResp struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if len(errResp.Messages) == 0 {
		t.Error("expected a validation message list")
	}
}
