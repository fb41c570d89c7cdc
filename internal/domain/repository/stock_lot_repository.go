package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// StockLotRepository define o porto de persistência de lotes de estoque (DIP).
// É o único caminho que muta lotes: criação na entrada e decremento no consumo.
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	GetByID(ctx context.Context, id string) (*entity.StockLot, error)

	// ListEligible devolve os lotes com disponível > 0 do produto, ordenados
	// por (data de entrada ASC, id ASC) — o contrato de ordem FIFO.
	ListEligible(ctx context.Context, productID string) ([]*entity.StockLot, error)

	// ListEligibleForUpdate é ListEligible com bloqueio exclusivo das linhas
	// (SELECT ... FOR UPDATE). Usar dentro da transação que vai consumir, para
	// serializar consumidores concorrentes do mesmo produto.
	ListEligibleForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error)

	// DecrementAvailable abate amount do disponível do lote. Falha com
	// domain.ErrInconsistenciaInterna se amount excede o disponível atual;
	// isso nunca deve ocorrer se o plano foi calculado sob o mesmo bloqueio.
	DecrementAvailable(ctx context.Context, lotID string, amount decimal.Decimal) (*entity.StockLot, error)

	// ListByProduct lista todos os lotes do produto (inclusive zerados), para
	// telas de auditoria.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockLot, error)

	// SumAvailableByProduct soma o disponível por produto. Com productIDs
	// vazio, considera todos os produtos com lote.
	SumAvailableByProduct(ctx context.Context, productIDs []string) (map[string]decimal.Decimal, error)
}
