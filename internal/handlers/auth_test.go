package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Yashraj221B/chemical-management-backend/internal/utils"
)

func TestRegisterSuccess(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`)).
		WithArgs("marie", "marie@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.
		ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email, first_name, last_name, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
		WithArgs("marie", "marie@example.com", "Marie", "Curie", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	router := newTestRouter(api)
	body := map[string]string{
		"username":   "marie",
		"email":      "marie@example.com",
		"password":   "Polonium1898",
		"first_name": "Marie",
		"last_name":  "Curie",
	}

	resp := doJSONRequest(t, router, http.MethodPost, "/auth/register", body, "")
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeObject(t, resp)
	if out["message"] != "User created" {
		t.Fatalf("unexpected message: %v", out["message"])
	}

	expectationsMet(t, mock)
}

func TestRegisterDuplicateUser(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`)).
		WithArgs("marie", "marie@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	router := newTestRouter(api)
	body := map[string]string{
		"username": "marie",
		"email":    "marie@example.com",
		"password": "Polonium1898",
	}

	resp := doJSONRequest(t, router, http.MethodPost, "/auth/register", body, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)

	out := decodeObject(t, resp)
	if out["detail"] != "User already exists" {
		t.Fatalf("unexpected detail: %v", out["detail"])
	}

	expectationsMet(t, mock)
}

func TestRegisterMissingFields(t *testing.T) {
	api, _, cleanup := setupMockAPI(t)
	defer cleanup()

	router := newTestRouter(api)
	resp := doJSONRequest(t, router, http.MethodPost, "/auth/register", map[string]string{"username": "marie"}, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
}

func TestLoginSuccess(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	hashed, err := utils.HashPassword("Polonium1898")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("marie").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "password_hash"}).
				AddRow(7, "marie", hashed),
		)

	router := newTestRouter(api)
	body := map[string]string{"username": "marie", "password": "Polonium1898"}

	resp := doJSONRequest(t, router, http.MethodPost, "/auth/login", body, "")
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeObject(t, resp)
	if out["token_type"] != "bearer" {
		t.Fatalf("unexpected token_type: %v", out["token_type"])
	}

	token, _ := out["access_token"].(string)
	if token == "" {
		t.Fatalf("expected non-empty access_token")
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "marie" {
		t.Fatalf("expected subject marie, got %q", claims.Username)
	}

	expectationsMet(t, mock)
}

func TestLoginWrongPassword(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	hashed, err := utils.HashPassword("Polonium1898")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("marie").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "password_hash"}).
				AddRow(7, "marie", hashed),
		)

	router := newTestRouter(api)
	body := map[string]string{"username": "marie", "password": "wrong"}

	resp := doJSONRequest(t, router, http.MethodPost, "/auth/login", body, "")
	mustStatus(t, resp.Code, http.StatusUnauthorized)

	expectationsMet(t, mock)
}

func TestLoginUnknownUser(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("nobody").
		WillReturnError(errNoRows())

	router := newTestRouter(api)
	body := map[string]string{"username": "nobody", "password": "whatever"}

	resp := doJSONRequest(t, router, http.MethodPost, "/auth/login", body, "")
	mustStatus(t, resp.Code, http.StatusUnauthorized)

	expectationsMet(t, mock)
}

func TestMeReturnsProfile(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, first_name, last_name, is_active, is_superuser, created_at, updated_at FROM users WHERE username = $1`)).
		WithArgs("labadmin").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "is_active", "is_superuser", "created_at", "updated_at"}).
				AddRow(1, "labadmin", "labadmin@example.com", "Lab", "Admin", true, false, sampleTime(), sampleTime()),
		)

	router := newTestRouter(api)
	resp := doJSONRequest(t, router, http.MethodGet, "/auth/me", nil, bearerToken(t))
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeObject(t, resp)
	if out["username"] != "labadmin" {
		t.Fatalf("unexpected username: %v", out["username"])
	}
	if _, leaked := out["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}

	expectationsMet(t, mock)
}

func TestUpdateMeDuplicateEmail(t *testing.T) {
	api, mock, cleanup := setupMockAPI(t)
	defer cleanup()

	mock.
		ExpectExec(regexp.QuoteMeta(`UPDATE users SET email = $1, first_name = $2, last_name = $3, updated_at = NOW() WHERE username = $4`)).
		WithArgs("taken@example.com", "", "", "labadmin").
		WillReturnError(uniqueViolation())

	router := newTestRouter(api)
	body := map[string]string{"email": "taken@example.com"}

	resp := doJSONRequest(t, router, http.MethodPut, "/auth/me", body, bearerToken(t))
	mustStatus(t, resp.Code, http.StatusBadRequest)

	expectationsMet(t, mock)
}
