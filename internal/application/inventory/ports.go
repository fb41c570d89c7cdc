package inventory

import (
	"context"

	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante o tudo-ou-nada do motor de
// estoque: movimentação, lote e linhas de consumo confirmam ou desfazem juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.StockLotRepository,
		consumptionRepo repository.LotConsumptionRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
