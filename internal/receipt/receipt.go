// Package receipt formats finalized sales into text receipts and hands
// them to a messaging channel.
package receipt

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-service/internal/models"
	"pos-service/internal/util"
)

// Notifier delivers a text message to a phone number. Delivery is
// fire-and-forget from the sale's point of view.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// LogNotifier writes receipts to the log instead of a real channel. Used
// in development and as the default when no gateway is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs outgoing receipts.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.NamedLogger("receipt")}
}

// Send logs the receipt text.
func (n *LogNotifier) Send(_ context.Context, phone, message string) error {
	n.logger.Info("Receipt dispatched",
		zap.String("phone", phone),
		zap.String("message", message))
	return nil
}

// Format renders an order into a human-readable text receipt.
func Format(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*** COMPROVANTE DE VENDA ***\n")
	fmt.Fprintf(&b, "Pedido #%d - %s\n", order.ID, order.CreatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Cliente: %s\n\n", order.CustomerName)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.Name)
		if item.Size != "" {
			fmt.Fprintf(&b, " (%s)", item.Size)
		}
		fmt.Fprintf(&b, " - R$ %s\n", item.UnitPrice.Mul(qty(item.Quantity)).StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: R$ %s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Pagamento: %s\n", paymentLabel(order.PaymentMethod))

	if len(order.Installments) > 0 {
		fmt.Fprintf(&b, "\nParcelas:\n")
		for _, inst := range order.Installments {
			fmt.Fprintf(&b, "  %d/%d - R$ %s - vence %s\n",
				inst.Seq, inst.Count, inst.Amount.StringFixed(2), inst.DueDate.Format("02/01/2006"))
		}
	}

	fmt.Fprintf(&b, "\nObrigado pela preferência!")
	return b.String()
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func paymentLabel(pm models.PaymentMethod) string {
	switch pm {
	case models.PaymentCredit:
		return "Cartão de crédito"
	case models.PaymentDebit:
		return "Cartão de débito"
	case models.PaymentCash:
		return "Dinheiro"
	case models.PaymentPix:
		return "Pix"
	case models.PaymentFiado:
		return "Fiado"
	}
	return string(pm)
}
