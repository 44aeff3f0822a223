package worker

import (
	"context"

	"go.uber.org/zap"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/receipt"
	"pos-service/internal/util"
)

// OrderGetter loads a persisted order for receipt rendering.
type OrderGetter interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
}

// ReceiptWorker consumes SaleCompleted events and dispatches text receipts
// to the customer's phone. Sales without a phone number are skipped.
type ReceiptWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	orders       OrderGetter
	notifier     receipt.Notifier
	logger       *zap.Logger
}

// NewReceiptWorker creates a new receipt worker
func NewReceiptWorker(consumer *broker.Consumer, orders OrderGetter, notifier receipt.Notifier) *ReceiptWorker {
	w := &ReceiptWorker{
		consumer: consumer,
		orders:   orders,
		notifier: notifier,
		logger:   util.NamedLogger("receipt-worker"),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnSaleCompleted(w.handleSaleCompleted)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *ReceiptWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting receipt worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *ReceiptWorker) Stop() error {
	w.logger.Info("Stopping receipt worker")
	return w.consumer.Close()
}

func (w *ReceiptWorker) handleSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error {
	if event.CustomerPhone == "" {
		util.ReceiptsSkippedTotal.Inc()
		w.logger.Info("No phone number on sale, skipping receipt",
			zap.Int64("order_id", event.OrderID))
		return nil
	}

	order, err := w.orders.GetOrderByID(ctx, event.OrderID)
	if err != nil {
		return err
	}

	if err := w.notifier.Send(ctx, event.CustomerPhone, receipt.Format(order)); err != nil {
		// Receipt delivery is fire-and-forget; the sale already happened.
		w.logger.Error("Failed to send receipt",
			zap.Int64("order_id", event.OrderID),
			zap.Error(err))
		return nil
	}

	util.ReceiptsSentTotal.Inc()
	w.logger.Info("Receipt sent", zap.Int64("order_id", event.OrderID))
	return nil
}
