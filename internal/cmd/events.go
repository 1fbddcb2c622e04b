package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"minishop/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume and log order and shipment events from RabbitMQ",
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL is required to consume events")
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("stopping event consumer...")
		// Closing the channel ends Consume.
		if err := mqClient.Close(); err != nil {
			log.Error("error closing RabbitMQ client", zap.Error(err))
		}
	}()

	log.Info("consuming events", zap.String("queue", rabbitmq.Queue))
	return mqClient.Consume(logEvent(log.Named("events")))
}

// logEvent returns a handler that writes every delivery to log.
func logEvent(log *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		log.Info("event received",
			zap.String("routing_key", msg.RoutingKey),
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.Bool("redelivered", msg.Redelivered),
			zap.ByteString("body", msg.Body),
		)
		return nil
	}
}
