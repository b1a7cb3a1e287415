package msgprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/groomly/pet-services/notifygateway/pkg/httpclient"
)

type Provider interface {
	Send(ctx context.Context, channel string, to string, text string) (res Response, err error)
}

type Config struct {
	Enable   bool          `mapstructure:"enable"`
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxRetry int           `mapstructure:"max_retry"`
}

type Request struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Text    string `json:"text"`
}

type Response struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
}

type MessageProvider struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewMessageProvider(cfg Config, client httpclient.HTTPClient) Provider {
	return &MessageProvider{cfg: cfg, client: client}
}

func (p *MessageProvider) Send(ctx context.Context, channel string, to string, text string) (Response, error) {
	payload, err := json.Marshal(Request{Channel: channel, To: to, Text: text})
	if err != nil {
		return Response{}, NewError(ErrorCodeServerError, err.Error())
	}

	headers := map[string]string{"Content-Type": "application/json"}

	resp, err := p.client.Post(ctx, p.cfg.URL, bytes.NewReader(payload), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, NewError(ErrorCodeTimeout, err.Error())
		}

		return Response{}, NewError(ErrorCodeNetworkError, err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := responseDetail(resp)

		if resp.StatusCode == http.StatusBadRequest {
			return Response{}, NewError(ErrorCodeInvalidRecipient, detail)
		}

		return Response{}, NewError(ErrorCodeServerError, detail)
	}

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Response{}, NewError(ErrorCodeServerError, err.Error())
	}

	return res, nil
}

const detailLimit = 512

// responseDetail keeps the gateway's own words so the failure can be
// persisted verbatim, truncated to keep job records bounded.
func responseDetail(resp *http.Response) string {
	detail := fmt.Sprintf("status %d", resp.StatusCode)

	snippet, err := io.ReadAll(io.LimitReader(resp.Body, detailLimit))
	if err != nil || len(snippet) == 0 {
		return detail
	}

	return detail + ": " + strings.TrimSpace(string(snippet))
}
