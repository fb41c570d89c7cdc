package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	domaininv "github.com/gestorlite/erp-api/internal/domain/inventory"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// RegisterMovementUseCase é o ponto único de registro de eventos de estoque
// (ENTRADA, SAIDA, AJUSTE), transacional e com bloqueio de linha
// (SELECT FOR UPDATE) sobre os lotes elegíveis. SAIDAs seguem o custeio FIFO
// quando habilitado, ou o custo médio legado quando não.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase constrói o caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar uma movimentação de estoque.
// Quantity é a magnitude (positiva) para ENTRADA e SAIDA, e carrega o sinal
// para AJUSTE. FIFOEnabled escolhe o custeio da saída; a decisão vem da borda
// (pedido ou tela), nunca de estado global.
type MovementInput struct {
	ProductID   string
	Type        string // ENTRADA, SAIDA, AJUSTE
	Quantity    decimal.Decimal
	UnitValue   *decimal.Decimal // obrigatório em ENTRADA
	FreightCost decimal.Decimal
	OtherCosts  decimal.Decimal
	Document    string
	Reason      string
	OriginKind  string  // MANUAL (padrão) ou PEDIDO
	OrderID     *string // pedido de origem, quando OriginKind = PEDIDO
	FIFOEnabled bool
	UserID      string
	Date        time.Time // zero = agora
}

// RegisterMovement valida a entrada, abre a transação e despacha por tipo.
// Qualquer falha (estoque insuficiente, erro de storage) desfaz tudo: nenhuma
// movimentação, lote ou linha de consumo parcial sobrevive.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.StockLotRepository,
		consumptionRepo repository.LotConsumptionRepository,
		_ repository.OrderRepository,
	) error {
		mov, err := uc.RegisterInTx(ctx, movRepo, lotRepo, consumptionRepo, input)
		if err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RegisterInTx executa o registro usando repositórios já atados à transação do
// chamador. Usado pelo próprio RegisterMovement e pela confirmação de pedidos,
// que registra uma movimentação por item dentro de uma única transação.
func (uc *RegisterMovementUseCase) RegisterInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	consumptionRepo repository.LotConsumptionRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.OriginKind == "" {
		input.OriginKind = entity.MovementOriginManual
	}

	switch input.Type {
	case entity.MovementTypeEntrada:
		return uc.doEntrada(ctx, movRepo, lotRepo, input, entity.LotOriginEntrada)
	case entity.MovementTypeSaida:
		return uc.doSaida(ctx, movRepo, lotRepo, consumptionRepo, input, input.Quantity)
	case entity.MovementTypeAjuste:
		return uc.doAjuste(ctx, movRepo, lotRepo, consumptionRepo, input)
	}
	return nil, domain.ErrInvalidInput
}

func (uc *RegisterMovementUseCase) validate(input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeEntrada:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrQuantidadeInvalida
		}
		if input.UnitValue == nil || input.UnitValue.IsNegative() {
			return domain.ErrCustoInvalido
		}
		if input.FreightCost.IsNegative() || input.OtherCosts.IsNegative() {
			return domain.ErrCustoInvalido
		}
	case entity.MovementTypeSaida:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrQuantidadeInvalida
		}
	case entity.MovementTypeAjuste:
		if input.Quantity.IsZero() {
			return domain.ErrQuantidadeInvalida
		}
	default:
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// doEntrada cria a movimentação e exatamente um lote do tamanho da entrada,
// com custo unitário (quantidade * valor unitário + frete + outros) / quantidade.
// O custo reconhecido da movimentação espelha o custo do lote.
func (uc *RegisterMovementUseCase) doEntrada(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	input MovementInput,
	lotOrigin string,
) (*entity.StockMovement, error) {
	unitValue := decimal.Zero
	if input.UnitValue != nil {
		unitValue = *input.UnitValue
	}
	unitCost, err := domaininv.EntryUnitCost(input.Quantity, unitValue, input.FreightCost, input.OtherCosts)
	if err != nil {
		return nil, err
	}
	totalValue := input.Quantity.Mul(unitCost)

	movType := input.Type
	mov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           input.ProductID,
		Type:                movType,
		Quantity:            input.Quantity,
		UnitValue:           &unitValue,
		FreightCost:         input.FreightCost,
		OtherCosts:          input.OtherCosts,
		TotalValue:          totalValue,
		RecognizedUnitCost:  &unitCost,
		RecognizedTotalCost: &totalValue,
		Document:            input.Document,
		OriginKind:          input.OriginKind,
		OrderID:             input.OrderID,
		Reason:              input.Reason,
		Date:                input.Date,
		CreatedAt:           time.Now(),
		CreatedBy:           input.UserID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	lot := &entity.StockLot{
		ID:                uuid.New().String(),
		ProductID:         input.ProductID,
		QuantityInitial:   input.Quantity,
		QuantityAvailable: input.Quantity,
		UnitCost:          unitCost,
		TotalValue:        totalValue,
		OriginKind:        lotOrigin,
		OriginMovementID:  &mov.ID,
		EntryDate:         input.Date,
		Document:          input.Document,
		CreatedAt:         time.Now(),
	}
	if err := lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return mov, nil
}

// doSaida registra a saída de magnitude qty. Em modo FIFO, bloqueia os lotes
// elegíveis, planeja o consumo e aplica plano + movimentação na mesma
// transação; estoque insuficiente rejeita a operação inteira. No caminho
// legado, o custo é o médio ponderado recalculado do razão de ENTRADAs e
// nenhum lote é tocado.
func (uc *RegisterMovementUseCase) doSaida(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	consumptionRepo repository.LotConsumptionRepository,
	input MovementInput,
	qty decimal.Decimal,
) (*entity.StockMovement, error) {
	signedQty := qty.Neg()
	if input.Type == entity.MovementTypeAjuste {
		// ajustes negativos preservam o sinal informado
		signedQty = input.Quantity
		qty = input.Quantity.Abs()
	}

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Type:        input.Type,
		Quantity:    signedQty,
		FreightCost: decimal.Zero,
		OtherCosts:  decimal.Zero,
		Document:    input.Document,
		OriginKind:  input.OriginKind,
		OrderID:     input.OrderID,
		Reason:      input.Reason,
		Date:        input.Date,
		CreatedAt:   time.Now(),
		CreatedBy:   input.UserID,
	}

	if input.FIFOEnabled {
		lots, err := lotRepo.ListEligibleForUpdate(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		plan, err := domaininv.PlanConsumption(lots, qty)
		if err != nil {
			return nil, err
		}
		mov.TotalValue = plan.TotalCost
		mov.RecognizedUnitCost = &plan.WeightedAverageUnitCost
		mov.RecognizedTotalCost = &plan.TotalCost
		if err := movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
		if err := applyConsumption(ctx, lotRepo, consumptionRepo, plan, mov.ID); err != nil {
			return nil, err
		}
		return mov, nil
	}

	// Caminho legado: valida o saldo pela via do razão (o sistema de custo
	// médio também nunca permitiu estoque contábil negativo).
	net, err := movRepo.NetQuantityByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if net.LessThan(qty) {
		return nil, domain.ErrEstoqueInsuficiente
	}

	entradas, err := movRepo.ListEntradasByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	avg := domaininv.AverageEntryCost(entradas)
	total := avg.Mul(qty).Round(4)
	mov.TotalValue = total
	mov.RecognizedUnitCost = &avg
	mov.RecognizedTotalCost = &total
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// doAjuste: ajuste positivo cria lote (origem AJUSTE_POSITIVO); negativo segue
// o mesmo destino de uma SAIDA, FIFO ou legado.
func (uc *RegisterMovementUseCase) doAjuste(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	consumptionRepo repository.LotConsumptionRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if input.Quantity.GreaterThan(decimal.Zero) {
		if input.UnitValue == nil {
			zero := decimal.Zero
			input.UnitValue = &zero
		}
		return uc.doEntrada(ctx, movRepo, lotRepo, input, entity.LotOriginAjustePositivo)
	}
	return uc.doSaida(ctx, movRepo, lotRepo, consumptionRepo, input, input.Quantity.Abs())
}

// applyConsumption materializa o plano: decrementa o disponível de cada lote e
// insere a linha de consumo correspondente. Deve rodar sob o mesmo bloqueio da
// leitura dos lotes; um decremento que excederia o disponível indica falha de
// bloqueio e aborta a transação com ErrInconsistenciaInterna. Compartilhado
// com a reconciliação legada, que reaplica o mesmo caminho da SAIDA.
func applyConsumption(
	ctx context.Context,
	lotRepo repository.StockLotRepository,
	consumptionRepo repository.LotConsumptionRepository,
	plan *domaininv.ConsumptionPlan,
	movementID string,
) error {
	for _, line := range plan.Lines {
		if _, err := lotRepo.DecrementAvailable(ctx, line.LotID, line.QuantityConsumed); err != nil {
			return err
		}
		consumption := &entity.LotConsumption{
			ID:               uuid.New().String(),
			MovementID:       movementID,
			LotID:            line.LotID,
			QuantityConsumed: line.QuantityConsumed,
			UnitCostApplied:  line.UnitCost,
			TotalCost:        line.TotalCost,
			CreatedAt:        time.Now(),
		}
		if err := consumptionRepo.Create(ctx, consumption); err != nil {
			return err
		}
	}
	return nil
}
