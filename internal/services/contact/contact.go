// Package services содержит издателя сообщений формы обратной связи.
package services

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lumi-library/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// ContactPublisher публикует сообщения формы обратной связи в почтовую
// очередь. Отправкой писем занимается отдельный почтовый воркер.
type ContactPublisher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// NewContactPublisher создает новый экземпляр ContactPublisher.
func NewContactPublisher(ch *amqp.Channel, log *slog.Logger) *ContactPublisher {
	return &ContactPublisher{
		ch:  ch,
		log: log,
	}
}

// Publish ставит сообщение в очередь на пересылку в поддержку.
func (p *ContactPublisher) Publish(message models.ContactMessage) error {
	if err := rabbitmq.PublishMessage(p.ch, "mail", "contact", message); err != nil {
		return err
	}
	p.log.Info("contact message published", slog.String("email", message.Email))
	return nil
}
