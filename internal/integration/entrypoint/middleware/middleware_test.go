package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestLogger(nil), Recovery(), ErrorHandler())
	engine.Use(handlers...)
	return engine
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	require.NoError(t, validation.Setup())

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedError   string
		expectedMessage string
	}{
		{
			name:            "malformed request",
			err:             NewMalformedRequestError("Parâmetro 'id' inválido", nil),
			expectedStatus:  http.StatusBadRequest,
			expectedError:   "Bad Request",
			expectedMessage: "Parâmetro 'id' inválido",
		},
		{
			name:            "business error",
			err:             domainerror.NewCategoryNameExistsError("Salário"),
			expectedStatus:  http.StatusBadRequest,
			expectedError:   "Bad Request",
			expectedMessage: "Já existe uma categoria com o nome: Salário",
		},
		{
			name:            "not found error",
			err:             domainerror.NewCategoryNotFoundError(99),
			expectedStatus:  http.StatusNotFound,
			expectedError:   "Not Found",
			expectedMessage: "Categoria com ID 99 não encontrado(a)",
		},
		{
			name:            "wrapped not found error",
			err:             errors.Join(errors.New("context"), domainerror.NewTransactionNotFoundError(7)),
			expectedStatus:  http.StatusNotFound,
			expectedError:   "Not Found",
			expectedMessage: "Transação com ID 7 não encontrado(a)",
		},
		{
			name:            "unexpected error",
			err:             errors.New("connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   "Internal Server Error",
			expectedMessage: "Ocorreu um erro interno no servidor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine()
			engine.GET("/api/categorias/:id", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categorias/99?x=1", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.expectedStatus, body.Status)
			assert.Equal(t, tt.expectedError, body.Error)
			assert.Equal(t, tt.expectedMessage, body.Message)
			assert.Equal(t, "/api/categorias/99?x=1", body.Path)
			assert.Empty(t, body.Errors)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	require.NoError(t, validation.Setup())

	engine := newEngine()
	engine.POST("/api/categorias", func(c *gin.Context) {
		var req dto.CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(BindError(err))
			return
		}
		c.Status(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categorias", strings.NewReader(`{"nome":"ab","tipo":"DESPESA"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Validation Error", body.Error)
	assert.Equal(t, "Erros de validação nos campos", body.Message)
	assert.Equal(t, []string{"nome: O nome deve ter entre 3 e 100 caracteres"}, body.Errors)
}

func TestBindError_MalformedBody(t *testing.T) {
	engine := newEngine()
	engine.POST("/api/categorias", func(c *gin.Context) {
		var req dto.CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(BindError(err))
			return
		}
		c.Status(http.StatusCreated)
	})

	for _, payload := range []string{`{"nome":`, `{"nome":"Lazer","tipo":"OUTRO"}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/categorias", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		body := decodeError(t, rec)
		assert.Equal(t, "Bad Request", body.Error, payload)
		assert.Empty(t, body.Errors, payload)
	}
}

func TestRecovery(t *testing.T) {
	engine := newEngine()
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, "Ocorreu um erro interno no servidor", body.Message)
}

func TestRequestLogger_RequestID(t *testing.T) {
	engine := newEngine()
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagates the caller id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		engine.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func runLimited(t *testing.T, limiter *RateLimiter, requests int) []int {
	t.Helper()
	engine := newEngine(limiter.Middleware())
	engine.GET("/api/categorias", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, requests)
	for i := 0; i < requests; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/categorias", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		engine.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestRateLimiter_Memory(t *testing.T) {
	store, err := NewMemoryRateLimitStore(16)
	require.NoError(t, err)

	limiter := NewRateLimiter(store, RateLimiterConfig{Enabled: true, MaxRequests: 2, Window: time.Minute})
	codes := runLimited(t, limiter, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_MemoryWindowReset(t *testing.T) {
	store, err := NewMemoryRateLimitStore(16)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	count, err := store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	now = now.Add(2 * time.Minute)
	count, err = store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	store.Reset()
	count, err = store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRateLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(NewRedisRateLimitStore(client), RateLimiterConfig{Enabled: true, MaxRequests: 1, Window: time.Minute})

	codes := runLimited(t, limiter, 2)
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	codes = runLimited(t, limiter, 1)
	assert.Equal(t, []int{http.StatusOK}, codes)
}

func TestRedisRateLimitStore_Hit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisRateLimitStore(client)

	count, err := store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(20 * time.Second)
	count, err = store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 40*time.Second, mr.TTL("k"), "later hits keep the running window")

	// A counter left without expiry gets one on its next hit.
	require.NoError(t, mr.Set("orphan", "5"))
	count, err = store.Hit(context.Background(), "orphan", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.Equal(t, time.Minute, mr.TTL("orphan"))
}

func TestRateLimiter_RedisUnavailableFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	limiter := NewRateLimiter(NewRedisRateLimitStore(client), RateLimiterConfig{Enabled: true, MaxRequests: 1, Window: time.Minute})
	codes := runLimited(t, limiter, 2)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
}

func TestRateLimiter_Disabled(t *testing.T) {
	store, err := NewMemoryRateLimitStore(16)
	require.NoError(t, err)

	limiter := NewRateLimiter(store, RateLimiterConfig{Enabled: false, MaxRequests: 1})
	codes := runLimited(t, limiter, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK}, codes)
}
