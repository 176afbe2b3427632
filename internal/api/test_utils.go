package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/plantissier/backend/internal/catalog"
	"github.com/pageza/plantissier/backend/internal/middleware"
	"github.com/pageza/plantissier/backend/internal/model"
	"github.com/pageza/plantissier/backend/internal/service"
	"github.com/pageza/plantissier/backend/internal/types"
)

// MockTokenValidator stubs service token validation for middleware tests.
type MockTokenValidator struct {
	mock.Mock
}

func (v *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := v.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// newTestRouter builds an in-process router over the embedded catalog,
// mirroring the production wiring minus redis and auth. Extra middleware
// (an auth guard, a limiter) can be layered onto the /api/v1 group.
func newTestRouter(t *testing.T, v1Middleware ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	svc := service.NewFormulationService(cat, model.NewDessertRegistry(), service.DefaultTuning())

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(zap.NewNop()))

	router.GET("/health", NewHealthHandler(cat, svc.Registry()).Check)

	v1 := router.Group("/api/v1")
	for _, mw := range v1Middleware {
		v1.Use(mw)
	}
	NewFormulationHandler(svc).RegisterRoutes(v1)
	NewCatalogHandler(cat, svc.Registry()).RegisterRoutes(v1)

	return router
}

// doRequest runs one request through the router and returns the recorder.
// A non-nil body is marshalled as JSON.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
		"response was: %s", rec.Body.String())
}

// eclairBody is the canonical formulation request used across API tests.
func eclairBody() map[string]any {
	return map[string]any{
		"dessert_type":        "eclair",
		"dietary_constraints": []string{},
		"budget_per_unit":     3.50,
		"yield_servings":      12,
	}
}
