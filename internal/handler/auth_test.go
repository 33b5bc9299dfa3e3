package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veramar/litoral/internal/domain"
	"github.com/veramar/litoral/internal/identity"
	"github.com/veramar/litoral/internal/service"
	"github.com/veramar/litoral/internal/session"
)

var testSecret = []byte("handler-test-secret-32-bytes-ok!")

type memoryUserStore struct {
	nextID int64
	byID   map[int64]domain.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{nextID: 1, byID: map[int64]domain.User{}}
}

func (m *memoryUserStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryUserStore) Create(_ context.Context, email, firstName, lastName string, imageURL *string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return nil, domain.ErrConflict
		}
	}
	u := domain.User{
		ID:        m.nextID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		ImageURL:  imageURL,
		UserType:  domain.UserTypeUnset,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.nextID++
	m.byID[u.ID] = u
	return &u, nil
}

func (m *memoryUserStore) UpdateImageURL(_ context.Context, id int64, imageURL *string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.ImageURL = imageURL
	m.byID[id] = u
	return nil
}

func (m *memoryUserStore) CompleteProfile(_ context.Context, id int64, firstName, lastName string, userType domain.UserType) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.UserType = userType
	u.IsProfileComplete = true
	m.byID[id] = u
	return &u, nil
}

type brokenSessionStore struct{}

func (brokenSessionStore) Create(context.Context, session.Session) error {
	return errors.New("redis down")
}
func (brokenSessionStore) Get(context.Context, string) (*session.Session, error) {
	return nil, errors.New("redis down")
}
func (brokenSessionStore) Delete(context.Context, string) error {
	return errors.New("redis down")
}

type testApp struct {
	echo  *echo.Echo
	users *memoryUserStore
}

func newTestApp(t *testing.T, sessions session.Store) testApp {
	t.Helper()

	users := newMemoryUserStore()
	auth := service.NewAuthService(users, sessions, identity.NewStaticVerifier(testSecret), service.AuthConfig{
		SessionTTL:  14 * 24 * time.Hour,
		FrontendURL: "http://localhost:5173",
	})

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewAppValidator()

	h := NewAuthHandler(auth, session.DevelopmentCookieOptions())
	e.POST("/api/v1/auth/google", h.Verify)
	e.GET("/api/v1/auth/me", h.Me)
	e.POST("/api/v1/auth/logout", h.Logout)

	authed := e.Group("/api/v1", SessionAuth(auth))
	authed.PATCH("/auth/profile", h.CompleteProfile)

	return testApp{echo: e, users: users}
}

func (a testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, email string, expiresIn time.Duration) string {
	t.Helper()
	token, err := identity.SignAssertion(testSecret, identity.Identity{
		Subject:       "google-sub-" + email,
		Email:         email,
		EmailVerified: true,
		GivenName:     "Ana",
		FamilyName:    "Costa",
		Picture:       "https://example.com/ana.jpg",
	}, expiresIn)
	require.NoError(t, err)
	return token
}

func verifyBody(t *testing.T, token string) *strings.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{"id_token": token})
	require.NoError(t, err)
	return strings.NewReader(string(body))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestVerify_Success(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "a session cookie must be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)
	user, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, false, user["is_profile_complete"])
}

func TestVerify_MissingToken(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_assertion", env.Error.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestVerify_GarbageToken(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, "not-a-jwt"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_assertion", decodeEnvelope(t, rec).Error.Code)
}

func TestVerify_ExpiredToken(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", -time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "expired_assertion", decodeEnvelope(t, rec).Error.Code)
}

func TestVerify_SessionStoreFailure(t *testing.T) {
	app := newTestApp(t, brokenSessionStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "session_store", decodeEnvelope(t, rec).Error.Code)
	assert.Nil(t, sessionCookie(rec), "no cookie on a failed session write")
}

func TestMe_NoCookie(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no_session", decodeEnvelope(t, rec).Error.Code)
}

func TestMe_WithSession(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	login := app.do(req)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	me := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	me.AddCookie(cookie)
	rec := app.do(me)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	user, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", user["email"])
}

func TestMe_DeletedUser(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	login := app.do(req)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	for id := range app.users.byID {
		delete(app.users.byID, id)
	}

	me := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	me.AddCookie(cookie)
	rec := app.do(me)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no_session", decodeEnvelope(t, rec).Error.Code)
}

func TestLogout_ThenMeFails(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	login := app.do(req)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	logout := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logout.AddCookie(cookie)
	rec := app.do(logout)
	assert.Equal(t, http.StatusOK, rec.Code)

	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	me := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	me.AddCookie(cookie)
	assert.Equal(t, http.StatusUnauthorized, app.do(me).Code)
}

func TestLogout_WithoutCookieIsOK(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	rec := app.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompleteProfile_EndToEnd(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	login := app.do(req)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	patch := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/profile",
		strings.NewReader(`{"first_name":"Ana","last_name":"Costa","user_type":"tourist"}`))
	patch.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	patch.AddCookie(cookie)
	rec := app.do(patch)

	assert.Equal(t, http.StatusOK, rec.Code)
	user, ok := decodeEnvelope(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["is_profile_complete"])
	assert.Equal(t, "tourist", user["user_type"])
}

func TestCompleteProfile_ValidationError(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", verifyBody(t, signToken(t, "ana@example.com", time.Hour)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	login := app.do(req)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	patch := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/profile",
		strings.NewReader(`{"first_name":"","last_name":"Costa","user_type":"tourist"}`))
	patch.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	patch.AddCookie(cookie)
	rec := app.do(patch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
}
