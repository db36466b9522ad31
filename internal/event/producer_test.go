package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	pkgkafka "github.com/utafrali/PrinterCatalog/pkg/kafka"
	"github.com/utafrali/PrinterCatalog/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func newTestProducer() (*Producer, *mockPublisher) {
	pub := &mockPublisher{}
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewProducer(pub, "printer-catalog", l), pub
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "catalog.brand.created", TopicBrandCreated)
	assert.Equal(t, "catalog.brand.updated", TopicBrandUpdated)
	assert.Equal(t, "catalog.brand.deleted", TopicBrandDeleted)
	assert.Equal(t, "catalog.printer.created", TopicPrinterCreated)
	assert.Equal(t, "catalog.printer.deleted", TopicPrinterDeleted)
}

func TestProducer_BrandCreated(t *testing.T) {
	p, pub := newTestProducer()
	b := domain.NewBrand("Acme")

	var got *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicBrandCreated, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	ctx := logger.WithCorrelationID(context.Background(), "corr-7")
	require.NoError(t, p.BrandCreated(ctx, b))

	require.NotNil(t, got)
	assert.Equal(t, TopicBrandCreated, got.EventType)
	assert.Equal(t, b.ID.String(), got.AggregateID)
	assert.Equal(t, AggregateTypeBrand, got.AggregateType)
	assert.Equal(t, "printer-catalog", got.Source)
	assert.Equal(t, "corr-7", got.CorrelationID)

	var data BrandData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	assert.Equal(t, BrandData{ID: b.ID.String(), Name: "Acme"}, data)
	pub.AssertExpectations(t)
}

func TestProducer_BrandUpdatedAndDeleted(t *testing.T) {
	p, pub := newTestProducer()
	id := uuid.New()

	pub.On("Publish", mock.Anything, TopicBrandUpdated, mock.Anything).Return(nil).Once()
	pub.On("Publish", mock.Anything, TopicBrandDeleted, mock.Anything).Return(nil).Once()

	require.NoError(t, p.BrandUpdated(context.Background(), id, "Acme2"))
	require.NoError(t, p.BrandDeleted(context.Background(), id))
	pub.AssertExpectations(t)
}

func TestProducer_PrinterCreated(t *testing.T) {
	p, pub := newTestProducer()
	pr := domain.NewPrinter("Office", "LJ", uuid.New(), uuid.New(), uuid.New())

	var got *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicPrinterCreated, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	require.NoError(t, p.PrinterCreated(context.Background(), pr))

	var data PrinterCreatedData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	assert.Equal(t, pr.Brand.String(), data.Brand)
	assert.Equal(t, pr.Toner.String(), data.Toner)
	assert.Equal(t, pr.Drum.String(), data.Drum)
	assert.Empty(t, got.CorrelationID)
}

func TestProducer_PrinterDeleted_PublishError(t *testing.T) {
	p, pub := newTestProducer()
	pub.On("Publish", mock.Anything, TopicPrinterDeleted, mock.Anything).
		Return(errors.New("broker down"))

	err := p.PrinterDeleted(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish catalog.printer.deleted event")
}

func TestNopPublisher(t *testing.T) {
	p := NewProducer(NopPublisher{}, "svc", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	assert.NoError(t, p.BrandDeleted(context.Background(), uuid.New()))
}
