package server

import (
	"testing"

	"gameshelf/config"
	"gameshelf/internal/app"
	"gameshelf/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Config(t *testing.T) {
	application, err := app.Assemble(config.Config{
		GeneralVersion:          "test",
		Environment:             "test",
		ServerPort:              8288,
		PersistenceDriver:       config.PersistenceMemory,
		PersistenceSlotKey:      "gameshelf_state",
		AutosaveIntervalSeconds: 30,
	}, database.DB{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	appServer, err := New(application)
	require.NoError(t, err)

	cfg := appServer.FiberApp.Config()
	assert.True(t, cfg.Immutable)
	assert.Equal(t, "gameshelf_server", cfg.AppName)
	assert.Equal(t, "Gameshelf/test", cfg.ServerHeader)

	assert.Error(t, appServer.Listen(0))
}
