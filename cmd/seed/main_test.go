package main

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-registration/config"
	appuser "github.com/oksasatya/go-ddd-user-registration/internal/application"
	"github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/memory"
)

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	users := memory.NewUserRepository()
	svc := appuser.NewRegistrationService(users, nil, nil, logger, &config.Config{})

	require.NoError(t, seedUser(ctx, svc, users, "demo@example.com", "DemoPass123_", logger))
	assert.Equal(t, "seed complete", hook.LastEntry().Message)

	t.Run("reseed with the same password", func(t *testing.T) {
		require.NoError(t, seedUser(ctx, svc, users, "demo@example.com", "DemoPass123_", logger))
		entry := hook.LastEntry()
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, true, entry.Data["password_matches"])
	})

	t.Run("reseed with a different password", func(t *testing.T) {
		require.NoError(t, seedUser(ctx, svc, users, "demo@example.com", "OtherPass123_", logger))
		entry := hook.LastEntry()
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, false, entry.Data["password_matches"])
	})

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSeedUser_InvalidPassword(t *testing.T) {
	logger, _ := test.NewNullLogger()
	users := memory.NewUserRepository()
	svc := appuser.NewRegistrationService(users, nil, nil, logger, &config.Config{})

	assert.Error(t, seedUser(context.Background(), svc, users, "demo@example.com", "weak", logger))
}
