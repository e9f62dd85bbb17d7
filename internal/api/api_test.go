package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aremaru/backend/internal/api"
	"github.com/aremaru/backend/internal/service"
	"github.com/aremaru/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	identity := service.NewIdentityService(testJWTSecret)
	profiles := service.NewProfileService(db)
	stores := service.NewStoreService(db, nil, nil)

	router := gin.New()
	v1 := router.Group("/api/v1")
	api.NewProfileHandler(profiles, identity).RegisterRoutes(v1)
	api.NewStoreHandler(stores, profiles, nil, identity, nil, nil, nil).RegisterRoutes(v1)
	api.NewCatalogHandler().RegisterRoutes(v1)

	return &testEnv{router: router, db: db}
}

// authToken issues a token the way the external identity provider would.
func authToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
