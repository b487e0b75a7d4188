package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

type stubUserService struct {
	signupUser *domain.User
	signupErr  error
	loginToken string
	loginUser  *domain.User
	loginErr   error
	profile    *domain.User
	profileErr error

	lastPatch ports.ProfilePatch
}

func (s *stubUserService) Signup(_ context.Context, name, email, _ string) (*domain.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	if s.signupUser != nil {
		return s.signupUser, nil
	}
	return &domain.User{ID: "u1", Name: name, Email: email, LeavesRemaining: domain.DefaultLeaveBalance}, nil
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubUserService) GetProfile(_ context.Context, _ string) (*domain.User, error) {
	return s.profile, s.profileErr
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ string, patch ports.ProfilePatch) (*domain.User, error) {
	s.lastPatch = patch
	return s.profile, s.profileErr
}

type stubVerificationService struct {
	issueOTPErr   error
	verifyOTPErr  error
	issueResetErr error

	lastEmail string
	lastCode  string
}

func (s *stubVerificationService) IssueOTP(_ context.Context, email string) error {
	s.lastEmail = email
	return s.issueOTPErr
}

func (s *stubVerificationService) VerifyOTP(_ context.Context, email, code string) error {
	s.lastEmail = email
	s.lastCode = code
	return s.verifyOTPErr
}

func (s *stubVerificationService) IssueResetToken(_ context.Context, email string) error {
	s.lastEmail = email
	return s.issueResetErr
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubVerificationService{})
	c, rec := newTestContext(http.MethodPost, "/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret1"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
	if resp.Token != "" {
		t.Fatalf("signup must not hand out a session credential")
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubUserService{signupErr: domain.ErrUserExists}, &stubVerificationService{})
	c, rec := newTestContext(http.MethodPost, "/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret1"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubVerificationService{})

	cases := map[string]string{
		"short password": `{"name":"Alice","email":"alice@example.com","password":"abc"}`,
		"bad email":      `{"name":"Alice","email":"not-an-email","password":"s3cret1"}`,
		"missing name":   `{"email":"alice@example.com","password":"s3cret1"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/auth/signup", body)
			assertHTTPError(t, h.Signup(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := &stubUserService{
		loginToken: "header.payload.sig",
		loginUser:  &domain.User{ID: "u1", Email: "alice@example.com"},
	}
	h := NewAuthHandler(users, &stubVerificationService{})
	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "header.payload.sig" {
		t.Fatalf("token missing from response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubUserService{loginErr: domain.ErrInvalidCredentials}, &stubVerificationService{})
	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_RequestOTP(t *testing.T) {
	verification := &stubVerificationService{}
	h := NewAuthHandler(&stubUserService{}, verification)
	c, rec := newTestContext(http.MethodPost, "/auth/otp/request", `{"email":"alice@example.com"}`)

	if err := h.RequestOTP(c); err != nil {
		t.Fatalf("RequestOTP returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verification.lastEmail != "alice@example.com" {
		t.Fatalf("service called with %q", verification.lastEmail)
	}
}

func TestAuthHandler_RequestOTP_UnknownEmail(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubVerificationService{issueOTPErr: domain.ErrUserNotFound})
	c, rec := newTestContext(http.MethodPost, "/auth/otp/request", `{"email":"ghost@example.com"}`)

	if err := h.RequestOTP(c); err != nil {
		t.Fatalf("RequestOTP returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	verification := &stubVerificationService{}
	h := NewAuthHandler(&stubUserService{}, verification)
	c, rec := newTestContext(http.MethodPost, "/auth/otp/verify",
		`{"email":"alice@example.com","otp":"482913"}`)

	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verification.lastCode != "482913" {
		t.Fatalf("service called with code %q", verification.lastCode)
	}
}

func TestAuthHandler_VerifyOTP_Expired(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubVerificationService{verifyOTPErr: domain.ErrOTPExpired})
	c, rec := newTestContext(http.MethodPost, "/auth/otp/verify",
		`{"email":"alice@example.com","otp":"482913"}`)

	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_VerifyOTP_BadCodeLength(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubVerificationService{})
	c, _ := newTestContext(http.MethodPost, "/auth/otp/verify",
		`{"email":"alice@example.com","otp":"1234"}`)

	assertHTTPError(t, h.VerifyOTP(c), http.StatusBadRequest)
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	verification := &stubVerificationService{}
	h := NewAuthHandler(&stubUserService{}, verification)
	c, rec := newTestContext(http.MethodPost, "/auth/password/forgot", `{"email":"alice@example.com"}`)

	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verification.lastEmail != "alice@example.com" {
		t.Fatalf("service called with %q", verification.lastEmail)
	}
}
