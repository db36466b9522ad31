package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/utafrali/PrinterCatalog/internal/domain"
	pkgkafka "github.com/utafrali/PrinterCatalog/pkg/kafka"
	"github.com/utafrali/PrinterCatalog/pkg/logger"
)

// Aggregate types.
const (
	AggregateTypeBrand   = "brand"
	AggregateTypePrinter = "printer"
)

// Kafka topics for catalog domain events.
var (
	TopicBrandCreated   = pkgkafka.Topic(AggregateTypeBrand, "created")
	TopicBrandUpdated   = pkgkafka.Topic(AggregateTypeBrand, "updated")
	TopicBrandDeleted   = pkgkafka.Topic(AggregateTypeBrand, "deleted")
	TopicPrinterCreated = pkgkafka.Topic(AggregateTypePrinter, "created")
	TopicPrinterDeleted = pkgkafka.Topic(AggregateTypePrinter, "deleted")
)

// BrandData is the payload of brand.created and brand.updated events.
type BrandData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PrinterCreatedData is the payload of a printer.created event.
type PrinterCreatedData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
	Brand string `json:"brand"`
	Toner string `json:"toner"`
	Drum  string `json:"drum"`
}

// DeletedData is the payload of the deleted events.
type DeletedData struct {
	ID string `json:"id"`
}

// Publisher sends an envelope to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// NopPublisher discards every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// Producer publishes catalog domain events.
type Producer struct {
	publisher Publisher
	source    string
	logger    *slog.Logger
}

// NewProducer creates a new event producer. source is recorded in every
// envelope.
func NewProducer(publisher Publisher, source string, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, source: source, logger: logger}
}

// BrandCreated publishes a brand.created event.
func (p *Producer) BrandCreated(ctx context.Context, b *domain.Brand) error {
	return p.publish(ctx, TopicBrandCreated, AggregateTypeBrand, b.ID, BrandData{ID: b.ID.String(), Name: b.Name})
}

// BrandUpdated publishes a brand.updated event.
func (p *Producer) BrandUpdated(ctx context.Context, id uuid.UUID, name string) error {
	return p.publish(ctx, TopicBrandUpdated, AggregateTypeBrand, id, BrandData{ID: id.String(), Name: name})
}

// BrandDeleted publishes a brand.deleted event.
func (p *Producer) BrandDeleted(ctx context.Context, id uuid.UUID) error {
	return p.publish(ctx, TopicBrandDeleted, AggregateTypeBrand, id, DeletedData{ID: id.String()})
}

// PrinterCreated publishes a printer.created event.
func (p *Producer) PrinterCreated(ctx context.Context, pr *domain.Printer) error {
	return p.publish(ctx, TopicPrinterCreated, AggregateTypePrinter, pr.ID, PrinterCreatedData{
		ID:    pr.ID.String(),
		Name:  pr.Name,
		Model: pr.Model,
		Brand: pr.Brand.String(),
		Toner: pr.Toner.String(),
		Drum:  pr.Drum.String(),
	})
}

// PrinterDeleted publishes a printer.deleted event.
func (p *Producer) PrinterDeleted(ctx context.Context, id uuid.UUID) error {
	return p.publish(ctx, TopicPrinterDeleted, AggregateTypePrinter, id, DeletedData{ID: id.String()})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateType string, id uuid.UUID, data any) error {
	event, err := pkgkafka.NewEvent(topic, id.String(), aggregateType, p.source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		event.WithCorrelationID(cid)
	}

	if err := p.publisher.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", id.String()),
	)
	return nil
}
