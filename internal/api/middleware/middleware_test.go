package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/metrics"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := tenancy.UserIDFromContext(r.Context())
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	h := Auth(testSecret)(echoUser())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "owner-1", time.Now().Add(time.Hour)), http.StatusOK, "owner-1"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), "owner-1", time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "owner-1", time.Now().Add(-time.Hour)), http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "", time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}

func TestAuth_EmptySecretRejects(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "u", time.Now().Add(time.Hour)))

	Auth("")(echoUser()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type resolverFunc func(ctx context.Context, userID string) (int64, error)

func (f resolverFunc) ResolveTenant(ctx context.Context, userID string) (int64, error) {
	return f(ctx, userID)
}

func TestTenant(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := tenancy.BusinessIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(7), id)
		w.WriteHeader(http.StatusNoContent)
	})

	resolver := resolverFunc(func(_ context.Context, userID string) (int64, error) {
		switch userID {
		case "owner":
			return 7, nil
		case "stranger":
			return 0, tenancy.ErrTenantNotFound
		default:
			return 0, errors.New("db down")
		}
	})
	h := Tenant(resolver, logger.Nop())(next)

	serve := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(tenancy.WithUserID(context.Background(), "owner")))
	assert.Equal(t, http.StatusForbidden, serve(tenancy.WithUserID(context.Background(), "stranger")))
	assert.Equal(t, http.StatusInternalServerError, serve(tenancy.WithUserID(context.Background(), "broken")))
	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			got := map[string]string{}
			for _, l := range m.GetLabel() {
				got[l.GetName()] = l.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, counterValue(t, reg, "booking_http_requests_total", map[string]string{
		"method": "GET",
		"route":  "/items/{id}",
		"status": "418",
	}))
}

func newLimiter(t *testing.T, limit int, failOpen bool) (*RateLimiter, *miniredis.Miniredis, *prometheus.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	reg := prometheus.NewRegistry()
	return NewRateLimiter(rdb, limit, time.Minute, failOpen, metrics.NewWithRegistry(reg, "test"), logger.Nop()), mr, reg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter(t *testing.T) {
	rl, mr, reg := newLimiter(t, 2, true)
	h := rl.Middleware("create_appointment")(okHandler())

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	limited := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	// Другой IP считается отдельно
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)

	// После окна счетчик сбрасывается
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	assert.Equal(t, 1.0, counterValue(t, reg, "booking_http_rate_limited_total", map[string]string{"route": "create_appointment"}))
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	send := func(h http.Handler, remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("ignored without trusted proxies", func(t *testing.T) {
		rl, _, _ := newLimiter(t, 1, true)
		h := rl.Middleware("r")(okHandler())

		// Подмена заголовка не дает обойти лимит
		assert.Equal(t, http.StatusOK, send(h, "198.51.100.7:1000", "203.0.113.1"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "198.51.100.7:1000", "203.0.113.2"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "198.51.100.7:1000", "203.0.113.3"))
	})

	t.Run("behind trusted proxy", func(t *testing.T) {
		proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.0.1"})
		require.NoError(t, err)
		rl, _, _ := newLimiter(t, 1, true)
		h := rl.WithTrustedProxies(proxies).Middleware("r")(okHandler())

		assert.Equal(t, http.StatusOK, send(h, "192.168.0.1:1000", "203.0.113.5, 10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "192.168.0.1:1000", "203.0.113.5, 10.0.0.2"))

		// Левые значения задает клиент и на ключ не влияют
		assert.Equal(t, http.StatusTooManyRequests, send(h, "192.168.0.1:1000", "1.1.1.1, 203.0.113.5"))

		// Другой клиент за тем же прокси считается отдельно
		assert.Equal(t, http.StatusOK, send(h, "192.168.0.1:1000", "203.0.113.6"))
	})
}

func TestParseTrustedProxies(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.0.1", "::1"})
	require.NoError(t, err)
	assert.Len(t, proxies, 3)

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}

func TestRateLimiter_RedisDown(t *testing.T) {
	t.Run("fail open", func(t *testing.T) {
		rl, mr, _ := newLimiter(t, 1, true)
		mr.Close()

		rec := httptest.NewRecorder()
		rl.Middleware("r")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("fail closed", func(t *testing.T) {
		rl, mr, _ := newLimiter(t, 1, false)
		mr.Close()

		rec := httptest.NewRecorder()
		rl.Middleware("r")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
