package client

import (
	"bytes"
	"context"
	"testing"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/mock"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T) (*App, *mock.MockAPIClient, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mock.NewMockAPIClient(ctrl)
	out := &bytes.Buffer{}

	return NewApp(api, out, logger.Nop()), api, out
}

func TestApp_Ping(t *testing.T) {
	app, api, out := newTestApp(t)
	api.EXPECT().Ping(gomock.Any()).Return("Smart server is running", nil)

	require.NoError(t, app.Run(context.Background(), []string{"ping"}))

	assert.Equal(t, "Smart server is running\n", out.String())
}

func TestApp_Token(t *testing.T) {
	app, api, out := newTestApp(t)
	api.EXPECT().GetToken(gomock.Any(), map[string]any{"name": "Ann"}).Return("session-token", nil)

	require.NoError(t, app.Run(context.Background(), []string{"token", `{"name":"Ann"}`}))

	assert.Equal(t, "session-token\n", out.String())
}

func TestApp_CreateProduct(t *testing.T) {
	app, api, out := newTestApp(t)
	api.EXPECT().
		CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Product) (models.InsertResult, error) {
			assert.Equal(t, "a@x.com", p.Email)
			assert.Equal(t, "Widget", p.Name)
			assert.Equal(t, models.NewAmount(10), p.Price)
			return models.InsertResult{Acknowledged: true, InsertedID: "p-1"}, nil
		})

	err := app.Run(context.Background(), []string{"product", "create", `{"owner":"a@x.com","name":"Widget","price":10}`})

	require.NoError(t, err)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"p-1"}`, out.String())
}

func TestApp_UpdateProduct(t *testing.T) {
	app, api, _ := newTestApp(t)
	price := models.Amount(15)
	api.EXPECT().
		UpdateProduct(gomock.Any(), "p-1", models.ProductUpdate{Price: &price}).
		Return(models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"product", "update", "p-1", `{"price":15}`}))
}

func TestApp_GetMissingProductPrintsNull(t *testing.T) {
	app, api, out := newTestApp(t)
	api.EXPECT().GetProduct(gomock.Any(), "p-1").Return(nil, nil)

	require.NoError(t, app.Run(context.Background(), []string{"product", "get", "p-1"}))

	assert.Equal(t, "null\n", out.String())
}

func TestApp_ListBids(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		email string
	}{
		{"all", []string{"bids", "list"}, ""},
		{"own", []string{"bids", "list", "a@x.com"}, "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, api, _ := newTestApp(t)
			api.EXPECT().ListBids(gomock.Any(), tt.email).Return([]models.Bid{}, nil)

			require.NoError(t, app.Run(context.Background(), tt.args))
		})
	}
}

func TestApp_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no command", nil, ErrUnknownCommand},
		{"unknown command", []string{"frobnicate"}, ErrUnknownCommand},
		{"missing id", []string{"product", "get"}, ErrMissingArgument},
		{"missing document", []string{"bid", "create"}, ErrMissingArgument},
		{"bad document", []string{"user", "create", "{"}, ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t)

			err := app.Run(context.Background(), tt.args)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_UnknownCommandPrintsUsage(t *testing.T) {
	app, _, out := newTestApp(t)

	_ = app.Run(context.Background(), []string{"help"})

	assert.Contains(t, out.String(), "products latest")
	assert.Contains(t, out.String(), "bids product")
}

func TestApp_ServerError(t *testing.T) {
	app, api, _ := newTestApp(t)
	api.EXPECT().ListBids(gomock.Any(), "b@x.com").Return(nil, adapter.ErrForbidden)

	err := app.Run(context.Background(), []string{"bids", "list", "b@x.com"})

	assert.ErrorIs(t, err, adapter.ErrForbidden)
}
