package services

import (
	"context"

	"github.com/shaiso/Mealflow/internal/mq"
)

// AMQPRewards публикует rewards-события в RabbitMQ.
//
// Реализует flow.RewardsService. Начисление баллов — fire-and-forget
// по контракту, поэтому брокер здесь естественный транспорт:
// publisher отдаёт событие и не ждёт обработки.
type AMQPRewards struct {
	publisher *mq.Publisher
}

// NewAMQPRewards создаёт rewards-клиент поверх publisher'а.
func NewAMQPRewards(publisher *mq.Publisher) *AMQPRewards {
	return &AMQPRewards{publisher: publisher}
}

// Award публикует событие о начислении баллов.
func (r *AMQPRewards) Award(ctx context.Context, userID, event string, metadata map[string]any) error {
	return r.publisher.PublishRewardGranted(ctx, mq.RewardGrantedPayload{
		UserID:   userID,
		Event:    event,
		Metadata: metadata,
	})
}
