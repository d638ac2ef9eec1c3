// Package testutil spins up an in-process HTTP environment for handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/api"
	"github.com/campustrade/campustrade/internal/app"
	iauth "github.com/campustrade/campustrade/internal/auth"
	dbtest "github.com/campustrade/campustrade/internal/database/testutil"
	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/pkg/response"
)

// Env bundles a router, database, and token mint for request-level tests.
type Env struct {
	Router *gin.Engine
	DB     *gorm.DB
	JWT    *iauth.JWTService
	Users  *services.UserService
}

// NewEnv builds a fully wired router over a fresh seeded in-memory database.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := dbtest.MustOpenTestDB(t, dbtest.WithSeedData())

	jwt, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret: "test-secret",
		Issuer: "campustrade",
	})
	require.NoError(t, err)

	cfg := &app.Config{}
	cfg.Directory.InstitutionalIDLength = 9

	router, err := api.NewRouter(db, jwt, cfg)
	require.NoError(t, err)

	users, err := services.NewUserService(db, 9)
	require.NoError(t, err)

	return &Env{Router: router, DB: db, JWT: jwt, Users: users}
}

// RegisterUser creates an account through the service layer and returns the
// user plus a valid access token.
func (e *Env) RegisterUser(t *testing.T, institutionalID, role string) (*models.User, string) {
	t.Helper()

	user, err := e.Users.Register(context.Background(), services.RegisterUserInput{
		InstitutionalID: institutionalID,
		Email:           institutionalID + "@campus.test",
		Name:            "Member " + institutionalID,
		Password:        "hunter22",
		Role:            role,
	})
	require.NoError(t, err)
	return user, e.TokenFor(t, user)
}

// RegisterAdmin inserts an admin row directly; self-service registration
// cannot mint admins.
func (e *Env) RegisterAdmin(t *testing.T, institutionalID string) (*models.User, string) {
	t.Helper()

	admin := models.User{
		InstitutionalID: institutionalID,
		Email:           institutionalID + "@campus.test",
		Name:            "Admin " + institutionalID,
		Password:        "unused-hash",
		Role:            models.RoleAdmin,
		IsActive:        true,
	}
	require.NoError(t, e.DB.Create(&admin).Error)
	return &admin, e.TokenFor(t, &admin)
}

// TokenFor mints an access token for the given user.
func (e *Env) TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := e.JWT.GenerateAccessToken(iauth.AccessTokenInput{
		UserID:          user.ID,
		Role:            user.Role,
		InstitutionalID: user.InstitutionalID,
	})
	require.NoError(t, err)
	return token
}

// Request performs an in-process HTTP request. A non-empty token is sent as a
// bearer credential; a non-nil body is JSON encoded.
func (e *Env) Request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// DecodeResponse unmarshals the standard response envelope.
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

// DecodeData unmarshals the envelope's data field into target.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}
