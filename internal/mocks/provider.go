package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) Send(ctx context.Context, channel string, to string, text string) (msgprovider.Response, error) {
	args := m.Called(ctx, channel, to, text)
	return args.Get(0).(msgprovider.Response), args.Error(1)
}
