package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_store/internal/hash"
	authmw "github.com/Skotchmaster/laptop_store/internal/middleware/auth"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
	"github.com/Skotchmaster/laptop_store/internal/service"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Repo     *repo.GormRepo
	Catalog  *service.CatalogService
	readyErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Laptop{}, &models.Order{}))

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{Users: r, Hasher: &hash.Hasher{Cost: bcrypt.MinCost}}
	catalog := &service.CatalogService{Laptops: r}

	env := &testEnv{T: t, Repo: r, Catalog: catalog}

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		CatalogHandler: &CatalogHTTP{Svc: catalog},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Orders: r}},
		Guard:          authmw.NewBasicMiddleware(authSvc),
		Ready: func(ctx context.Context) error {
			if env.readyErr != nil {
				return env.readyErr
			}
			return r.Ping(ctx)
		},
	})
	env.E = e

	_, err = authSvc.EnsureAdmin(context.Background(), "admin", "admin")
	require.NoError(t, err)
	return env
}

type creds struct{ user, pass string }

var admin = &creds{"admin", "admin"}

func (env *testEnv) do(method, path string, body io.Reader, contentType string, who *creds) *httptest.ResponseRecorder {
	env.T.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if who != nil {
		req.SetBasicAuth(who.user, who.pass)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(method, path string, body any, who *creds) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
		}
	}
	return env.do(method, path, &buf, echo.MIMEApplicationJSON, who)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["detail"].(string)
}

func laptopBody(brand string, price float64, rating string) map[string]any {
	return map[string]any{
		"brand":           brand,
		"processor_brand": "Intel",
		"processor_name":  "Core i5",
		"ram_gb":          8,
		"ram_type":        "DDR4",
		"ssd":             512,
		"hdd":             0,
		"os":              "Windows",
		"price":           price,
		"rating":          rating,
	}
}
