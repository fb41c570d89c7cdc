package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorlite/erp-api/internal/application/dto"
	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// InventoryHandler trata as requisições HTTP de estoque: registro de
// movimentações, consultas de saldo, lotes e o disparo da reconciliação.
type InventoryHandler struct {
	movementUC  *appinv.RegisterMovementUseCase
	balanceUC   *appinv.BalanceUseCase
	reconcileUC *appinv.ReconcileUseCase
	lotRepo     repository.StockLotRepository
	movRepo     repository.StockMovementRepository
	fifoDefault bool
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(
	movementUC *appinv.RegisterMovementUseCase,
	balanceUC *appinv.BalanceUseCase,
	reconcileUC *appinv.ReconcileUseCase,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	fifoDefault bool,
) *InventoryHandler {
	return &InventoryHandler{
		movementUC:  movementUC,
		balanceUC:   balanceUC,
		reconcileUC: reconcileUC,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
		fifoDefault: fifoDefault,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimentação de estoque
// @Description  Ponto de entrada único do razão: ENTRADA cria um lote, SAIDA consome lotes por FIFO (ou valida saldo pela via legada, conforme fifo_enabled) e AJUSTE segue o sinal da quantidade.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Dados da movimentação"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id e type são obrigatórios"})
	}
	fifoEnabled := h.fifoDefault
	if in.FIFOEnabled != nil {
		fifoEnabled = *in.FIFOEnabled
	}
	input := appinv.MovementInput{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitValue:   in.UnitValue,
		FreightCost: in.FreightCost,
		OtherCosts:  in.OtherCosts,
		Document:    in.Document,
		Reason:      in.Reason,
		FIFOEnabled: fifoEnabled,
		UserID:      GetUserID(c),
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	movement, err := h.movementUC.RegisterMovement(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimentações de um produto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID do produto"
// @Param        from        query  string  false  "Início do período (RFC3339)"
// @Param        to          query  string  false  "Fim do período (RFC3339)"
// @Param        limit       query  int     false  "Limite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.MovementListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id é obrigatório"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from deve ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to deve ser RFC3339"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit > 100 {
		limit = 100
	}
	list, err := h.movRepo.ListByProduct(c.Context(), productID, from, to, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, *toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de estoque de um produto
// @Description  Calcula o saldo pelas duas vias (lotes e razão) e acusa divergência entre elas.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "ID do produto"
// @Success      200        {object}  appinv.ProductBalance
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/balance/{productID} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productID é obrigatório"})
	}
	balance, err := h.balanceUC.GetProductBalance(c.Context(), productID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(balance)
}

// ListLots godoc
// @Summary      Listar lotes de um produto
// @Description  Inclui lotes zerados, para auditoria do custeio.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productID  path   string  true   "ID do produto"
// @Param        limit      query  int     false  "Limite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.LotListResponse
// @Router       /api/inventory/products/{productID}/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productID é obrigatório"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit > 200 {
		limit = 200
	}
	lots, err := h.lotRepo.ListByProduct(c.Context(), productID, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := dto.LotListResponse{
		Items: make([]dto.LotResponse, 0, len(lots)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, lot := range lots {
		out.Items = append(out.Items, dto.LotResponse{
			ID:                lot.ID,
			ProductID:         lot.ProductID,
			QuantityInitial:   lot.QuantityInitial,
			QuantityAvailable: lot.QuantityAvailable,
			UnitCost:          lot.UnitCost,
			TotalValue:        lot.TotalValue,
			OriginKind:        lot.OriginKind,
			EntryDate:         lot.EntryDate,
			Document:          lot.Document,
		})
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Produtos abaixo do estoque mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  appinv.LowStockItem
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.balanceUC.ListLowStock(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(items)
}

// ListReconciliationCandidates godoc
// @Summary      Listar candidatos à reconciliação
// @Description  Prévia da varredura: pedidos de venda legados com sua classificação atual (eligible ou legacy), sem aplicar nada.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(50)
// @Success      200    {array}  appinv.Candidate
// @Router       /api/inventory/reconciliation/candidates [get]
func (h *InventoryHandler) ListReconciliationCandidates(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 500 {
		limit = 500
	}
	candidates, err := h.reconcileUC.ListCandidates(c.Context(), limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(candidates)
}

// RunReconciliation godoc
// @Summary      Disparar a reconciliação legada
// @Description  Migra retroativamente pedidos de venda custeados por média para FIFO, um pedido por transação. Idempotente: rodar de novo não reprocessa pedidos já custeados.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReconcileRequest  false  "Opções do job"
// @Success      200   {object}  appinv.ReconcileReport
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/reconciliation [post]
func (h *InventoryHandler) RunReconciliation(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	if in.Limit <= 0 {
		in.Limit = 50
	}
	if in.Limit > 500 {
		in.Limit = 500
	}
	report, err := h.reconcileUC.Run(c.Context(), in.Limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:                  m.ID,
		ProductID:           m.ProductID,
		Type:                m.Type,
		Quantity:            m.Quantity,
		UnitValue:           m.UnitValue,
		FreightCost:         m.FreightCost,
		OtherCosts:          m.OtherCosts,
		TotalValue:          m.TotalValue,
		RecognizedUnitCost:  m.RecognizedUnitCost,
		RecognizedTotalCost: m.RecognizedTotalCost,
		Document:            m.Document,
		OriginKind:          m.OriginKind,
		OrderID:             m.OrderID,
		Reason:              m.Reason,
		Date:                m.Date,
		CreatedAt:           m.CreatedAt,
	}
}
