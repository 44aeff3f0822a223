package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pos-service/internal/models"
)

func TestFormatCashSale(t *testing.T) {
	order := &models.Order{
		ID:            42,
		CustomerName:  models.WalkInCustomerName,
		Total:         decimal.NewFromInt(50),
		PaymentMethod: models.PaymentCash,
		CreatedAt:     time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Name: "Calça", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
		},
	}

	text := Format(order)

	assert.Contains(t, text, "Pedido #42")
	assert.Contains(t, text, "Cliente: Cliente Balcão")
	assert.Contains(t, text, "1x Calça - R$ 50.00")
	assert.Contains(t, text, "Total: R$ 50.00")
	assert.Contains(t, text, "Pagamento: Dinheiro")
	assert.NotContains(t, text, "Parcelas")
}

func TestFormatFiadoSaleWithSchedule(t *testing.T) {
	order := &models.Order{
		ID:            43,
		CustomerName:  "Maria",
		Total:         decimal.NewFromInt(120),
		PaymentMethod: models.PaymentFiado,
		CreatedAt:     time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Name: "Vestido", UnitPrice: decimal.NewFromInt(60), Quantity: 2, Size: "M"},
		},
		Installments: []models.Installment{
			{Seq: 1, Count: 2, Amount: decimal.NewFromInt(60), DueDate: time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)},
			{Seq: 2, Count: 2, Amount: decimal.NewFromInt(60), DueDate: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)},
		},
	}

	text := Format(order)

	assert.Contains(t, text, "2x Vestido (M) - R$ 120.00")
	assert.Contains(t, text, "Pagamento: Fiado")
	assert.Contains(t, text, "1/2 - R$ 60.00 - vence 09/04/2025")
	assert.Contains(t, text, "2/2 - R$ 60.00 - vence 09/05/2025")
}
