package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/project-service/internal/config"
	"github.com/spec-kit/project-service/internal/events"
)

func TestStartNotificationWorkerLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher(logger)

	svc := StartNotificationWorker(dispatcher, logger, config.NotificationConfig{WebhookURL: "http://hooks.local"})
	require.NotNil(t, svc)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventTaskUpdated,
		ResourceID: 42,
	}))

	assert.Equal(t, 1, logs.FilterMessage("resource changed").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestStartNotificationWorkerWithoutDispatcher(t *testing.T) {
	assert.Nil(t, StartNotificationWorker(nil, zap.NewNop(), config.NotificationConfig{}))
}
