package internal

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"spd/internal/controllers"
	"spd/internal/services"
	"spd/internal/storage"
	"spd/internal/structures"
	"spd/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteTestController(t *testing.T) (*controllers.ApiController, *structures.Config) {
	t.Helper()

	conf := &structures.Config{}
	conf.Awaken.Enabled = true
	conf.Awaken.DailyLimit = 1
	conf.Panel.ApiServer = "https://charts.example.com/api/chart"
	conf.Legacy.FilePath = filepath.Join(t.TempDir(), "legacy.dat")

	logger := &testutil.MockLogger{}
	legacy := storage.NewLegacyStore(conf, &testutil.MockCompressor{}, testutil.NewMockMetrics(), logger)
	require.NoError(t, legacy.Load())
	migrator := storage.NewMigrator(legacy, nil, time.UTC, logger)

	ac := controllers.NewApiController(
		conf,
		logger,
		testutil.NewMockStandService(),
		services.NewNameGenerator(conf),
		services.NewCooldownManager(conf),
		services.NewPanelAPIService(conf),
		migrator,
		testutil.NewMockCache(),
		testutil.NewMockMetrics(),
	)
	return ac, conf
}

func TestInitRoutes_RegistersSixRoutes(t *testing.T) {
	ac, conf := newRouteTestController(t)

	router := InitRoutes(ac, conf)
	routes := router.GetRoutes()

	require.Len(t, routes, 6)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/stand")
	assert.Contains(t, urls, "/stand/set")
	assert.Contains(t, urls, "/stand/awaken")
	assert.Contains(t, urls, "/stand/random")
	assert.Contains(t, urls, "/usage")
	assert.Contains(t, urls, "/admin/migrate")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	ac, conf := newRouteTestController(t)

	router := InitRoutes(ac, conf)
	routes := router.GetRoutes()

	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /stand with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/stand", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /stand/awaken with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/stand/awaken", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
