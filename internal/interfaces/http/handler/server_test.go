package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/auth"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/handler"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/middleware"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/router"
	"github.com/minh261002/Shopee.vn-sub000/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// server runs the ledger API on an in-memory SQLite database
type server struct {
	t        *testing.T
	engine   *gin.Engine
	verifier *auth.TokenVerifier
	storeID  uuid.UUID
	headers  map[string]string
}

type serverOption func(*serverConfig)

type serverConfig struct {
	auth bool
}

func withAuth() serverOption {
	return func(c *serverConfig) { c.auth = true }
}

func newServer(t *testing.T, opts ...serverOption) *server {
	t.Helper()
	var cfg serverConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	require.NoError(t, middleware.SetupValidator())

	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := zap.NewNop()
	scope := persistence.NewGormTransactionScope(db,
		persistence.WithRetryPolicy(persistence.RetryPolicy{MaxRetries: 3, Backoff: time.Millisecond}))
	locationRepo := persistence.NewGormLocationRepository(db)
	itemRepo := persistence.NewGormInventoryItemRepository(db)
	movementRepo := persistence.NewGormStockMovementRepository(db)

	locations := appinv.NewLocationService(locationRepo, scope, log)
	items := appinv.NewItemStore(locationRepo, itemRepo, scope, log)
	ledger := appinv.NewLedgerService(items, itemRepo, movementRepo, scope, log)
	reservations := appinv.NewReservationService(items, ledger, scope, log)
	stats := appinv.NewStatsService(persistence.NewSQLXStatsReader(sqlx.NewDb(sqlDB, persistence.SQLXDriverName(config.DriverSQLite))), time.Hour)

	handlers := handler.Handlers{
		Locations:    handler.NewLocationHandler(locations),
		Items:        handler.NewItemHandler(locations, items, ledger),
		Movements:    handler.NewMovementHandler(locations, ledger),
		Reservations: handler.NewReservationHandler(locations, reservations),
		Stats:        handler.NewStatsHandler(stats),
		System:       handler.NewSystemHandler("inventory-ledger", "test", handler.PingFunc(sqlDB.PingContext)),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", handlers.System.Health)

	s := &server{t: t, engine: engine, storeID: uuid.New(), headers: map[string]string{}}
	var api []gin.HandlerFunc
	if cfg.auth {
		s.verifier = auth.NewTokenVerifier(config.AuthConfig{Enabled: true, Secret: "handler-test", Issuer: "inventory"})
		api = append(api, middleware.Authenticate(middleware.AuthConfig{Verifier: s.verifier}))
		s.as("clerk-1", s.storeID)
	}
	r := router.NewRouter(engine, router.WithMiddleware(api...))
	handlers.Register(r)
	r.Setup()
	return s
}

// as authenticates later requests as subject with grants for stores
func (s *server) as(subject string, stores ...uuid.UUID) {
	s.t.Helper()
	token, err := s.verifier.IssueToken(subject, stores, time.Hour)
	require.NoError(s.t, err)
	s.headers[middleware.AuthHeaderKey] = middleware.BearerPrefix + token
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return testutil.DoJSON(s.t, s.engine, method, "/api/v1"+path, body, s.headers)
}

func (s *server) createLocation(storeID uuid.UUID, code string, isDefault bool) appinv.LocationResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/stores/"+storeID.String()+"/locations", map[string]any{
		"name":      "Location " + code,
		"code":      code,
		"isDefault": isDefault,
	})
	return testutil.RequireData[appinv.LocationResponse](s.t, w, http.StatusCreated)
}

func (s *server) record(body map[string]any) []appinv.MovementResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/movements", body)
	return testutil.RequireData[[]appinv.MovementResponse](s.t, w, http.StatusCreated)
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
