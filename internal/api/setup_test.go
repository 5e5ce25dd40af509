package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/launchbase/backend/config"
	"github.com/launchbase/backend/internal/api"
	"github.com/launchbase/backend/internal/database"
)

func setupSetupHandlerTest(t *testing.T, token string, env config.Environment) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	handler := api.NewSetupHandler(db, token, env)
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, mock
}

func TestRunSetup(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	for range database.Statements() {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	req.Header.Set("X-Setup-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), "create users table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSetupReportsFailures(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	for i := range database.Statements() {
		if i == 0 {
			mock.ExpectExec(".*").WillReturnError(errors.New("permission denied"))
			continue
		}
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	req.Header.Set("X-Setup-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSetupRejectsBadToken(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	req.Header.Set("X-Setup-Token", "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSetupRejectsMissingToken(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSetupRejectsEmptyConfiguredToken(t *testing.T) {
	// No configured token means the endpoint is unusable, not open.
	router, mock := setupSetupHandlerTest(t, "", config.Development)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	req.Header.Set("X-Setup-Token", "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSetupRejectsProduction(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Production)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/setup", nil)
	req.Header.Set("X-Setup-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupStatus(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	mock.ExpectQuery("SELECT 1 FROM user_profiles").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dev/setup/status", nil)
	req.Header.Set("X-Setup-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupStatusMissingSchema(t *testing.T) {
	router, mock := setupSetupHandlerTest(t, "secret", config.Development)

	mock.ExpectQuery("SELECT 1 FROM user_profiles").
		WillReturnError(errors.New(`relation "user_profiles" does not exist`))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dev/setup/status", nil)
	req.Header.Set("X-Setup-Token", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
