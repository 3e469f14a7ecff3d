package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/logging"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// In-memory repositories
// =====================

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByApiKey(ctx context.Context, apiKey string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ApiKey != nil && *u.ApiKey == apiKey && u.IsActive {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateApiKey(ctx context.Context, userID int64, apiKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ApiKey = &apiKey
	return nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (r *memUserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type memRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*model.RefreshToken
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{nextID: 1, tokens: map[string]*model.RefreshToken{}}
}

func (r *memRefreshTokenRepo) Create(ctx context.Context, t *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	r.tokens[t.Token] = t
	return nil
}

func (r *memRefreshTokenRepo) FindValidByToken(ctx context.Context, tokenStr string, now time.Time) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[tokenStr]
	if !ok || rt.IsRevoked || !rt.ExpiresAt.After(now) {
		return nil, nil
	}
	return rt, nil
}

func (r *memRefreshTokenRepo) Revoke(ctx context.Context, tokenStr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[tokenStr]
	if !ok || rt.IsRevoked {
		return repository.ErrRefreshTokenNotFound
	}
	rt.IsRevoked = true
	return nil
}

func (r *memRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, rt := range r.tokens {
		if rt.UserID == userID && !rt.IsRevoked {
			rt.IsRevoked = true
			count++
		}
	}
	return count, nil
}

func (r *memRefreshTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key, rt := range r.tokens {
		if !rt.ExpiresAt.After(now) {
			delete(r.tokens, key)
			count++
		}
	}
	return count, nil
}

// =====================
// Fixture
// =====================

type apiFixture struct {
	e *echo.Echo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	userRepo := newMemUserRepo()
	rtRepo := newMemRefreshTokenRepo()

	codec, err := token.NewCodec("test-secret", 1800*time.Second, "easy-api")
	require.NoError(t, err)

	uc := usecase.NewAuthUsecase(userRepo, rtRepo, codec, validator.NewAuthValidator())
	h := handler.NewAuthHandler(uc, logging.Nop())

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Users:  userRepo,
		Codec:  codec,
		Logger: logging.Nop(),
	})

	e := echo.New()
	h.RegisterRoutes(e, requireAuth)

	return &apiFixture{e: e}
}

func (f *apiFixture) do(method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// dataの中のフィールドを文字列で取り出す
func dataString(t *testing.T, body map[string]interface{}, keys ...string) string {
	t.Helper()
	cur, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data missing: %v", body)
	for i, key := range keys {
		if i == len(keys)-1 {
			s, ok := cur[key].(string)
			require.True(t, ok, "key %q missing: %v", key, cur)
			return s
		}
		cur, ok = cur[key].(map[string]interface{})
		require.True(t, ok, "key %q missing", key)
	}
	return ""
}

// =====================
// Scenario
// =====================

func TestAuthLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	// 登録
	rec := f.do(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotContains(t, rec.Body.String(), "password123")

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	// 同じemailの再登録は400
	rec = f.do(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"password123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// ログイン
	rec = f.do(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body = decodeBody(t, rec)
	accessToken := dataString(t, body, "accessToken")
	refreshToken := dataString(t, body, "refreshToken")
	assert.Len(t, refreshToken, 64)
	assert.Equal(t, float64(1800), body["data"].(map[string]interface{})["expiresIn"])

	bearer := http.Header{"Authorization": {"Bearer " + accessToken}}

	// 自分の情報
	rec = f.do(http.MethodGet, "/auth/me", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "password_hash")

	// 未発行のrefresh tokenは401
	rec = f.do(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+strings.Repeat("ab", 32)+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 有効なrefresh tokenで新しいaccess tokenが出る
	rec = f.do(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+refreshToken+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeBody(t, rec)
	assert.NotEmpty(t, dataString(t, body, "accessToken"))

	// ログアウト
	rec = f.do(http.MethodPost, "/auth/logout", `{"refreshToken":"`+refreshToken+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// ログアウト後のrefreshは401
	rec = f.do(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+refreshToken+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 2回目のログアウトは400
	rec = f.do(http.MethodPost, "/auth/logout", `{"refreshToken":"`+refreshToken+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// access token自体はログアウト後もTTLまで有効
	rec = f.do(http.MethodGet, "/auth/me", "", bearer)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthApiKeyLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/auth/register", `{"email":"bob@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/auth/login", `{"email":"bob@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	accessToken := dataString(t, decodeBody(t, rec), "accessToken")
	bearer := http.Header{"Authorization": {"Bearer " + accessToken}}

	// APIキー発行は認証必須
	rec = f.do(http.MethodPost, "/auth/api-key", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/auth/api-key", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apiKey := dataString(t, decodeBody(t, rec), "apiKey")
	assert.Len(t, apiKey, 64)

	// 発行したキーで認証できる
	rec = f.do(http.MethodGet, "/auth/me", "", http.Header{"X-API-Key": {apiKey}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bob@example.com")

	// 再発行すると前のキーは使えなくなる
	rec = f.do(http.MethodPost, "/auth/api-key", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	newKey := dataString(t, decodeBody(t, rec), "apiKey")
	assert.NotEqual(t, apiKey, newKey)

	rec = f.do(http.MethodGet, "/auth/me", "", http.Header{"X-API-Key": {apiKey}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLogoutAll(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/auth/register", `{"email":"carol@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// 2端末分ログイン
	rec = f.do(http.MethodPost, "/auth/login", `{"email":"carol@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	accessToken := dataString(t, body, "accessToken")
	refresh1 := dataString(t, body, "refreshToken")

	rec = f.do(http.MethodPost, "/auth/login", `{"email":"carol@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	refresh2 := dataString(t, decodeBody(t, rec), "refreshToken")
	require.NotEqual(t, refresh1, refresh2)

	rec = f.do(http.MethodPost, "/auth/logout-all", "", http.Header{"Authorization": {"Bearer " + accessToken}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"revokedCount":2`)

	// どちらのrefresh tokenも使えない
	for _, tok := range []string{refresh1, refresh2} {
		rec = f.do(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+tok+`"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

// FindByIDだけ落ちるリポジトリ（ストア障害の再現用）
type brokenUserRepo struct {
	*memUserRepo
}

func (r *brokenUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, errors.New("connection refused")
}

// ストア障害は認証切れ（401）ではなく500で返す
func TestMe_StoreFailure(t *testing.T) {
	codec, err := token.NewCodec("test-secret", 1800*time.Second, "easy-api")
	require.NoError(t, err)

	uc := usecase.NewAuthUsecase(&brokenUserRepo{newMemUserRepo()}, newMemRefreshTokenRepo(), codec, validator.NewAuthValidator())
	h := handler.NewAuthHandler(uc, logging.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, int64(1))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMe_UserGone(t *testing.T) {
	codec, err := token.NewCodec("test-secret", 1800*time.Second, "easy-api")
	require.NoError(t, err)

	uc := usecase.NewAuthUsecase(newMemUserRepo(), newMemRefreshTokenRepo(), codec, validator.NewAuthValidator())
	h := handler.NewAuthHandler(uc, logging.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, int64(999))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/auth/register", `{"email":"dave@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	recWrong := f.do(http.MethodPost, "/auth/login", `{"email":"dave@example.com","password":"wrong-password"}`, nil)
	recUnknown := f.do(http.MethodPost, "/auth/login", `{"email":"nobody@example.com","password":"password123"}`, nil)

	// どちらも401かつ同じボディ（emailの存在を漏らさない）
	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)

	bodyWrong := decodeBody(t, recWrong)
	bodyUnknown := decodeBody(t, recUnknown)
	assert.Equal(t, bodyWrong["message"], bodyUnknown["message"])
	assert.Equal(t, bodyWrong["error"], bodyUnknown["error"])
}
