package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для неё.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetMailQueues возвращает очереди, которые слушает почтовый воркер:
// напоминания об истекающих подписках и сообщения формы обратной связи.
func GetMailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "mail.expiring", RoutingKey: "expiring"},
		{QueueName: "mail.contact", RoutingKey: "contact"},
	}
}
