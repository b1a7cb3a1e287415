package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/internal/mocks"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestDispatcher_Send(t *testing.T) {
	logger := zap.NewNop()

	cfg := &config.Config{
		Provider: msgprovider.Config{
			Timeout:  100 * time.Millisecond,
			MaxRetry: 3,
		},
	}

	job := &model.NotificationJob{
		ID:        123,
		TenantID:  "tenant-1",
		Channel:   model.ChannelSMS,
		Recipient: "31612345678",
		Body:      "Bella is due for grooming tomorrow at 10:00",
	}

	t.Run("first attempt success returns provider response", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{MessageID: "prov-123", Status: "sent"}, nil).Once()

		response, err := svc.Send(context.Background(), job)

		assert.NoError(t, err)
		assert.Equal(t, "prov-123", response.MessageID)

		mockProvider.AssertExpectations(t)
	})

	t.Run("invalid recipient is not retried", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{},
				msgprovider.NewError(msgprovider.ErrorCodeInvalidRecipient, "status 400: bad number"))

		_, err := svc.Send(context.Background(), job)

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeInvalidRecipient, msgprovider.CodeOf(err))

		mockProvider.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("timeout is not retried", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{},
				msgprovider.NewError(msgprovider.ErrorCodeTimeout, "context deadline exceeded"))

		_, err := svc.Send(context.Background(), job)

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeTimeout, msgprovider.CodeOf(err))

		mockProvider.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("transient error retries until success", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{},
				msgprovider.NewError(msgprovider.ErrorCodeServerError, "status 503")).Twice()
		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{MessageID: "prov-123"}, nil).Once()

		response, err := svc.Send(context.Background(), job)

		assert.NoError(t, err)
		assert.Equal(t, "prov-123", response.MessageID)

		mockProvider.AssertNumberOfCalls(t, "Send", 3)
	})

	t.Run("exhausted retries return the last error verbatim", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Return(msgprovider.Response{},
				msgprovider.NewError(msgprovider.ErrorCodeNetworkError, "dial tcp: connection refused"))

		_, err := svc.Send(context.Background(), job)

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeNetworkError, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, "connection refused")

		mockProvider.AssertNumberOfCalls(t, "Send", 3)
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		mockProvider := &mocks.Provider{}
		svc := service.NewDispatcherService(mockProvider, logger, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		mockProvider.On("Send", mock.Anything, "SMS", "31612345678", job.Body).
			Run(func(mock.Arguments) { cancel() }).
			Return(msgprovider.Response{},
				msgprovider.NewError(msgprovider.ErrorCodeServerError, "status 500"))

		_, err := svc.Send(ctx, job)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
