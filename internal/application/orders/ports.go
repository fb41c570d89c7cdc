package orders

import (
	"context"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// OrderItemForPDF item do pedido enriquecido com o nome do produto.
type OrderItemForPDF struct {
	entity.OrderItem
	ProductName string
}

// OrderPDFGenerator porta para a geração do documento PDF do pedido.
type OrderPDFGenerator interface {
	GenerateOrderPDF(
		ctx context.Context,
		order *entity.Order,
		partner *entity.Partner,
		items []OrderItemForPDF,
	) ([]byte, error)
}
