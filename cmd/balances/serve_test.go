package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/wealth-balance-service/internal/handler"
)

func withoutPostgresSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	} {
		t.Setenv(k, "")
	}
}

func useConfig(t *testing.T, path string) {
	t.Helper()
	prev := *configPath
	*configPath = path
	t.Cleanup(func() { *configPath = prev })
}

func TestServe_MemoryRunsWithoutPostgresSecrets(t *testing.T) {
	withoutPostgresSecrets(t)
	useConfig(t, "../../config.yaml")

	a, err := bootstrap()
	require.NoError(t, err)
	defer a.close()

	c := &serveCmd{memory: true}
	repo, pinger, err := c.backend(context.Background(), a)
	require.NoError(t, err)
	engine := a.engine(repo, pinger)

	for _, path := range []string{"/ready", handler.APIV1Prefix + handler.BalancesPath} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServe_PostgresRequiresSecrets(t *testing.T) {
	withoutPostgresSecrets(t)
	useConfig(t, "../../config.yaml")

	a, err := bootstrap()
	require.NoError(t, err)
	defer a.close()

	c := &serveCmd{}
	_, _, err = c.backend(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PostgresConfig.User failed on required")
	assert.Nil(t, a.db, "no pool is opened when validation fails")
}
