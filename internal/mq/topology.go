package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология rewards-событий.
const (
	ExchangeRewards Exchange = "mealflow.rewards"

	QueueRewardsGranted Queue = "rewards.granted"

	RoutingKeyGranted RoutingKey = "granted"
)

// SetupTopology объявляет exchange, очередь и binding для
// rewards-событий. Идемпотентно: повторный вызов безопасен.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeRewards), // name
			"direct",                // type
			true,                    // durable
			false,                   // auto-deleted
			false,                   // internal
			false,                   // no-wait
			nil,                     // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeRewards, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueRewardsGranted), // name
			true,                        // durable
			false,                       // delete when unused
			false,                       // exclusive
			false,                       // no-wait
			nil,                         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueRewardsGranted, err)
		}

		err = ch.QueueBind(
			string(QueueRewardsGranted), // queue name
			string(RoutingKeyGranted),   // routing key
			string(ExchangeRewards),     // exchange
			false,                       // no-wait
			nil,                         // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueRewardsGranted, ExchangeRewards, err)
		}

		return nil
	})
}
