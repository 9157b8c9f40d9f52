package http

import (
	"errors"
	"net/http"
	"testing"
)

var errSMTPDown = errors.New("smtp down")

func TestRegisterAndDuplicate(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/users/register", "", map[string]string{
		"nombre": "A", "email": "a@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID     string `json:"id"`
			Nombre string `json:"nombre"`
			Email  string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, rec, &created)
	if created.Message != "Usuario registrado exitosamente" || created.Token == "" {
		t.Fatalf("unexpected register response: %s", rec.Body.String())
	}
	if created.User.Nombre != "A" || created.User.Email != "a@x.com" {
		t.Fatalf("unexpected user payload: %s", rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPost, "/api/users/register", "", map[string]string{
		"nombre": "A", "email": "a@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", rec.Code)
	}
	var dup struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &dup)
	if dup.Message != "El usuario ya existe" {
		t.Fatalf("unexpected duplicate message: %q", dup.Message)
	}
}

func TestLoginUniformErrorMessage(t *testing.T) {
	e, _ := newTestServer(t)
	registerFor(t, e, "Ana", "ana@example.com")

	wrongPass := doJSON(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "otra-clave",
	})
	unknownEmail := doJSON(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "nadie@example.com", "password": "secreta123",
	})

	if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknownEmail.Code)
	}
	// Byte-identical bodies so the two cases cannot be told apart.
	if wrongPass.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("expected identical bodies, got %q vs %q", wrongPass.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginSuccessAfterRegister(t *testing.T) {
	e, _ := newTestServer(t)
	registerFor(t, e, "Ana", "ana@example.com")

	rec := doJSON(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "secreta123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Sesión iniciada" || resp.Token == "" {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}
}

func TestProfileRequiresToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Token no proporcionado" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestProfileReturnsUserWithoutPassword(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerFor(t, e, "Ana", "ana@example.com")

	rec := doJSON(t, e, http.MethodGet, "/api/users/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var profile map[string]any
	decodeBody(t, rec, &profile)
	if profile["nombre"] != "Ana" || profile["email"] != "ana@example.com" {
		t.Fatalf("unexpected profile: %s", rec.Body.String())
	}
	for key := range profile {
		if key == "password" || key == "passwordHash" {
			t.Fatalf("profile must not expose password material: %s", rec.Body.String())
		}
	}
}

func TestForgotAndResetPasswordFlow(t *testing.T) {
	e, mailer := newTestServer(t)
	registerFor(t, e, "Ana", "ana@example.com")

	rec := doJSON(t, e, http.MethodPost, "/api/users/forgotpassword", "", map[string]string{
		"email": "ana@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if mailer.token == "" || mailer.email != "ana@example.com" {
		t.Fatalf("expected reset token mailed to the account")
	}

	rec = doJSON(t, e, http.MethodPut, "/api/users/resetpassword/"+mailer.token, "", map[string]string{
		"password": "nueva-clave456",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Old password no longer works, new one does.
	if rec := doJSON(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "secreta123",
	}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "nueva-clave456",
	}); rec.Code != http.StatusOK {
		t.Fatalf("expected new password to log in, got %d", rec.Code)
	}

	// The token was consumed by the successful reset.
	rec = doJSON(t, e, http.MethodPut, "/api/users/resetpassword/"+mailer.token, "", map[string]string{
		"password": "otra-clave789",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on token reuse, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Token inválido o expirado" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestForgotPasswordUnknownEmailLeaks404(t *testing.T) {
	// Pre-existing behavior: unlike login, this endpoint reveals whether the
	// email exists.
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/users/forgotpassword", "", map[string]string{
		"email": "nadie@example.com",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestForgotPasswordMailerFailure(t *testing.T) {
	e, mailer := newTestServer(t)
	registerFor(t, e, "Ana", "ana@example.com")
	mailer.err = errSMTPDown

	rec := doJSON(t, e, http.MethodPost, "/api/users/forgotpassword", "", map[string]string{
		"email": "ana@example.com",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}

	// The undeliverable token must not be redeemable.
	mailer.err = nil
	reuse := doJSON(t, e, http.MethodPut, "/api/users/resetpassword/"+mailer.token, "", map[string]string{
		"password": "nueva-clave456",
	})
	if reuse.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cleared token, got %d", reuse.Code)
	}
}
