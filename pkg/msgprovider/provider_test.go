package msgprovider_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/groomly/pet-services/notifygateway/pkg/mocks"
	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProvider(client *mocks.HTTPClient) msgprovider.Provider {
	cfg := msgprovider.Config{
		Enable:   true,
		URL:      "http://gateway.local/messages",
		Timeout:  3 * time.Second,
		MaxRetry: 3,
	}
	return msgprovider.NewMessageProvider(cfg, client)
}

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestMessageProvider_Send(t *testing.T) {
	t.Run("decodes the gateway response", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, "http://gateway.local/messages", mock.Anything,
			map[string]string{"Content-Type": "application/json"}).
			Return(httpResponse(200, `{"message_id":"prov-123","provider":"gateway","status":"sent"}`), nil)

		response, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.NoError(t, err)
		assert.Equal(t, "prov-123", response.MessageID)
		assert.Equal(t, "sent", response.Status)

		client.AssertExpectations(t)
	})

	t.Run("posts the channel with the message", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		var sent string
		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				raw, _ := io.ReadAll(args.Get(2).(io.Reader))
				sent = string(raw)
			}).
			Return(httpResponse(200, `{"message_id":"prov-124"}`), nil)

		_, err := provider.Send(context.Background(), "WHATSAPP", "31612345678", "hello")

		assert.NoError(t, err)
		assert.Contains(t, sent, `"channel":"WHATSAPP"`)
		assert.Contains(t, sent, `"to":"31612345678"`)
	})

	t.Run("400 maps to invalid recipient", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(httpResponse(400, `{"error":"bad number"}`), nil)

		_, err := provider.Send(context.Background(), "SMS", "not-a-number", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeInvalidRecipient, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, "bad number")
	})

	t.Run("5xx maps to server error keeping the gateway response", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(httpResponse(503, `{"error":"downstream carrier unavailable"}`), nil)

		_, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeServerError, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, "status 503")
		assert.ErrorContains(t, err, "downstream carrier unavailable")
	})

	t.Run("5xx with an empty body still reports the status", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(httpResponse(502, ``), nil)

		_, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeServerError, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, "status 502")
	})

	t.Run("deadline exceeded maps to timeout keeping the cause", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("post %q: %w", "http://gateway.local/messages", context.DeadlineExceeded))

		_, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeTimeout, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, context.DeadlineExceeded.Error())
	})

	t.Run("connection failure maps to network error keeping the cause", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("dial tcp 127.0.0.1:9090: connection refused"))

		_, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeNetworkError, msgprovider.CodeOf(err))
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("malformed body maps to server error", func(t *testing.T) {
		client := &mocks.HTTPClient{}
		provider := newProvider(client)

		client.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(httpResponse(200, `not json`), nil)

		_, err := provider.Send(context.Background(), "SMS", "31612345678", "hello")

		assert.Error(t, err)
		assert.Equal(t, msgprovider.ErrorCodeServerError, msgprovider.CodeOf(err))
	})

	t.Run("foreign errors have no provider code", func(t *testing.T) {
		assert.Equal(t, "", msgprovider.CodeOf(fmt.Errorf("plain error")))
	})
}
