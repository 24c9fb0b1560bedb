package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// Publisher публикует предложения листа ожидания в RabbitMQ.
// Канал работает в confirm mode: EmitPromotionOffer возвращает nil только после ack брокера.
type Publisher struct {
	url        string
	exchange   string
	routingKey string
	timeout    time.Duration
	log        Logger

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

// NewPublisher подключается к брокеру и объявляет topic exchange
func NewPublisher(url, exchange, routingKey string, timeout time.Duration, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:        url,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    timeout,
		log:        log,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// EmitPromotionOffer отправляет предложение освободившегося слота владельцу записи
func (p *Publisher) EmitPromotionOffer(ctx context.Context, entry *domain.WaitlistEntry, freed *domain.Booking) error {
	offer, err := newPromotionOffer(entry, freed)
	if err != nil {
		return err
	}

	body, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("%w: marshal offer: %v", ErrPublish, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return err
	}

	// старые подтверждения не должны смешиваться с текущим
drain:
	for {
		select {
		case <-p.confirmCh:
		case <-p.returnCh:
		default:
			break drain
		}
	}

	messageID := uuid.NewString()
	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Type:         promotionOfferType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	select {
	case ret := <-p.returnCh:
		return fmt.Errorf("%w: key=%s code=%d text=%s", ErrUnroutable, p.routingKey, ret.ReplyCode, ret.ReplyText)
	case conf := <-p.confirmCh:
		if !conf.Ack {
			return fmt.Errorf("%w: nack for entry id=%d, tag=%d", ErrPublish, entry.ID, conf.DeliveryTag)
		}
		p.log.Info("EmitPromotionOffer: entry id=%d published, message_id=%s", entry.ID, messageID)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrPublish, ctx.Err())
	}
}

func (p *Publisher) connect() error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial: amqp.DefaultDial(p.timeout),
	})
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnection, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: channel: %v", ErrConnection, err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: exchange declare: %v", ErrConnection, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: confirm mode: %v", ErrConnection, err)
	}

	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil {
		return nil
	}
	p.log.Warn("notifier: reconnecting to broker")
	return p.connect()
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
