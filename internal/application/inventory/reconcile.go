package inventory

import (
	"context"
	"errors"

	"github.com/gestorlite/erp-api/internal/domain/entity"
	domaininv "github.com/gestorlite/erp-api/internal/domain/inventory"
	"github.com/gestorlite/erp-api/internal/domain/repository"
	"github.com/gestorlite/erp-api/pkg/logger"
)

// errNotEligible sinaliza que um candidato bruto não passou na reavaliação de
// elegibilidade dentro da transação (não é erro, vira "ignorado" no relatório).
var errNotEligible = errors.New("pedido não elegível para reconciliação")

// Situações de um item do relatório de reconciliação.
const (
	ReconcileStatusReconciliado = "reconciliado"
	ReconcileStatusIgnorado     = "ignorado"
	ReconcileStatusErro         = "erro"
)

// ReconcileResult é o resultado por pedido do job.
type ReconcileResult struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	Message          string `json:"message,omitempty"`
	MovementsUpdated int    `json:"movements_updated"`
}

// ReconcileReport é o resultado agregado de uma execução do job.
type ReconcileReport struct {
	Candidates int               `json:"candidates"`
	Reconciled int               `json:"reconciled"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	Items      []ReconcileResult `json:"items"`
}

// ReconcileUseCase é o job de reconciliação legada: migra retroativamente
// pedidos de venda custeados por média para o custeio FIFO, reaplicando o
// consumo contra os lotes atualmente disponíveis. Roda sob demanda (endpoint
// com limite), um pedido por transação; a falha de um pedido é registrada no
// relatório e o lote seguinte continua. Executar duas vezes é inócuo: pedidos
// já custeados não têm saídas legadas e são ignorados.
type ReconcileUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	movRepo   repository.StockMovementRepository
	consRepo  repository.LotConsumptionRepository
	lotRepo   repository.StockLotRepository
	log       *logger.Logger
}

// NewReconcileUseCase constrói o job. Os repositórios soltos (fora do
// TxRunner) são usados apenas para leituras de classificação.
func NewReconcileUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	consRepo repository.LotConsumptionRepository,
	lotRepo repository.StockLotRepository,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		movRepo:   movRepo,
		consRepo:  consRepo,
		lotRepo:   lotRepo,
		log:       log,
	}
}

// Run varre até limit candidatos brutos e tenta reconciliar cada um em sua
// própria transação.
func (uc *ReconcileUseCase) Run(ctx context.Context, limit int) (*ReconcileReport, error) {
	if limit <= 0 {
		limit = 50
	}
	candidates, err := uc.orderRepo.ListReconciliationCandidates(ctx, limit)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{Candidates: len(candidates)}
	for _, order := range candidates {
		updated, err := uc.reconcileOrder(ctx, order)
		switch {
		case err == nil:
			report.Reconciled++
			report.Items = append(report.Items, ReconcileResult{
				OrderID: order.ID, Status: ReconcileStatusReconciliado, MovementsUpdated: updated,
			})
		case errors.Is(err, errNotEligible):
			report.Skipped++
			report.Items = append(report.Items, ReconcileResult{
				OrderID: order.ID, Status: ReconcileStatusIgnorado, Message: err.Error(),
			})
		default:
			// Falha por pedido (ex.: estoque sumiu entre a varredura e a
			// aplicação) não derruba o lote inteiro.
			report.Failed++
			report.Items = append(report.Items, ReconcileResult{
				OrderID: order.ID, Status: ReconcileStatusErro, Message: err.Error(),
			})
			uc.log.Error().Err(err).Str("order_id", order.ID).Msg("reconciliação do pedido falhou")
		}
	}
	return report, nil
}

// reconcileOrder reavalia a elegibilidade dentro da transação e reaplica o
// caminho da SAIDA (plano FIFO + consumo + custo reconhecido) para cada saída
// legada do pedido. Devolve quantas movimentações foram migradas.
func (uc *ReconcileUseCase) reconcileOrder(ctx context.Context, order *entity.Order) (int, error) {
	updated := 0
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.StockLotRepository,
		consumptionRepo repository.LotConsumptionRepository,
		_ repository.OrderRepository,
	) error {
		movements, err := movRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		counts, err := consumptionRepo.CountByMovements(ctx, movementIDs(movements))
		if err != nil {
			return err
		}
		available, err := lotRepo.SumAvailableByProduct(ctx, itemProductIDs(order.Items))
		if err != nil {
			return err
		}
		if !domaininv.EligibleForReconciliation(order, movements, counts, available) {
			return errNotEligible
		}

		for _, mov := range movements {
			if mov.Type != entity.MovementTypeSaida || counts[mov.ID] > 0 {
				continue
			}
			qty := mov.Quantity.Abs()
			lots, err := lotRepo.ListEligibleForUpdate(ctx, mov.ProductID)
			if err != nil {
				return err
			}
			plan, err := domaininv.PlanConsumption(lots, qty)
			if err != nil {
				return err
			}
			if err := applyConsumption(ctx, lotRepo, consumptionRepo, plan, mov.ID); err != nil {
				return err
			}
			if err := movRepo.UpdateRecognizedCost(ctx, mov.ID, plan.WeightedAverageUnitCost, plan.TotalCost); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// ClassifyOrder devolve o estado de custeio do pedido (fifo, eligible,
// legacy), usado na consulta de pedidos da UI.
func (uc *ReconcileUseCase) ClassifyOrder(ctx context.Context, order *entity.Order) (string, error) {
	movements, err := uc.movRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return "", err
	}
	counts, err := uc.consRepo.CountByMovements(ctx, movementIDs(movements))
	if err != nil {
		return "", err
	}
	available, err := uc.lotRepo.SumAvailableByProduct(ctx, itemProductIDs(order.Items))
	if err != nil {
		return "", err
	}
	return domaininv.ClassifyFIFOState(order, movements, counts, available), nil
}

// Candidate é um candidato bruto à reconciliação com sua classificação atual.
type Candidate struct {
	OrderID   string `json:"order_id"`
	PartnerID string `json:"partner_id"`
	FIFOState string `json:"fifo_state"` // eligible ou legacy
}

// ListCandidates devolve os candidatos brutos da varredura já classificados,
// sem aplicar nada. É a prévia do que o Run faria.
func (uc *ReconcileUseCase) ListCandidates(ctx context.Context, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 50
	}
	orders, err := uc.orderRepo.ListReconciliationCandidates(ctx, limit)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(orders))
	for _, order := range orders {
		state, err := uc.ClassifyOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{
			OrderID:   order.ID,
			PartnerID: order.PartnerID,
			FIFOState: state,
		})
	}
	return candidates, nil
}

func movementIDs(movements []*entity.StockMovement) []string {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.ID)
	}
	return ids
}

func itemProductIDs(items []entity.OrderItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
