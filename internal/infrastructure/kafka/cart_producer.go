package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// CommandAddItem — тип команды добавления товара в корзину.
const CommandAddItem = "add_item"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CartProducer публикует команды корзины в топик сервиса корзины.
// Ключ сообщения — ID корзины, поэтому команды одной корзины попадают в одну партицию.
type CartProducer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
	now    func() time.Time
}

func NewCartProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *CartProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return newCartProducer(writer, logger, cfg)
}

func newCartProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *CartProducer {
	return &CartProducer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// AddItem отправляет команду add_item с полной записью товара.
func (p *CartProducer) AddItem(ctx context.Context, cartID string, product domain.Product) error {
	if cartID == "" {
		return e.Wrap(whereami.WhereAmI(), e.ErrEmptyCartID)
	}

	value, err := p.GetPayloadBytes(cartID, product)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(cartID),
		Value: value,
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %w", e.ErrCartUnavailable, err))
	}

	p.logger.Debugf("Cart command %s published: cart_id: %s, product_id: %s", CommandAddItem, cartID, product.ID)
	return nil
}

// GetPayloadBytes сериализует команду в protobuf Struct.
func (p *CartProducer) GetPayloadBytes(cartID string, product domain.Product) ([]byte, error) {
	tags := make([]any, 0, len(product.Tags))
	for _, tag := range product.Tags {
		tags = append(tags, tag)
	}

	event, err := structpb.NewStruct(map[string]any{
		"event_id":        uuid.NewString(),
		"event_timestamp": p.now().UTC().Format(time.RFC3339Nano),
		"type":            CommandAddItem,
		"cart_id":         cartID,
		"product": map[string]any{
			"id":                  product.ID,
			"title":               product.Title,
			"price":               product.Price.String(),
			"description":         product.Description,
			"discount_percentage": product.DiscountPercentage.String(),
			"image_url":           product.ImageURL,
			"tags":                tags,
		},
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return proto.Marshal(event)
}

// EnsureTopic создаёт топик команд корзины, если его ещё нет.
func (p *CartProducer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *CartProducer) Close(_ context.Context) error {
	return p.writer.Close()
}
