package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorlite/erp-api/internal/application/dto"
	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/application/orders"
	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// OrderHandler trata as requisições HTTP de pedidos de compra e venda.
// fifoDefault é o modo de custeio do ambiente, usado quando a confirmação não
// traz fifo_enabled explícito.
type OrderHandler struct {
	uc          *orders.OrderUseCase
	pdfUC       *orders.PDFUseCase
	reconcileUC *appinv.ReconcileUseCase
	fifoDefault bool
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *orders.OrderUseCase, pdfUC *orders.PDFUseCase, reconcileUC *appinv.ReconcileUseCase, fifoDefault bool) *OrderHandler {
	return &OrderHandler{uc: uc, pdfUC: pdfUC, reconcileUC: reconcileUC, fifoDefault: fifoDefault}
}

// Create godoc
// @Summary      Criar pedido em rascunho
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Dados do pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Kind == "" || in.PartnerID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind, partner_id e items são obrigatórios"})
	}
	input := orders.CreateOrderInput{
		Kind:         in.Kind,
		PartnerID:    in.PartnerID,
		Document:     in.Document,
		FreightTotal: in.FreightTotal,
		OtherCosts:   in.OtherCosts,
		Notes:        in.Notes,
		UserID:       GetUserID(c),
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, orders.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	order, err := h.uc.CreateDraft(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, ""))
}

// Confirm godoc
// @Summary      Confirmar pedido
// @Description  Gera uma movimentação de estoque por item numa única transação. Compras criam lotes com o frete rateado; vendas consomem lotes por FIFO (ou pela via legada, conforme fifo_enabled).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.ConfirmOrderRequest  false  "Opções de confirmação"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.ConfirmOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	fifoEnabled := h.fifoDefault
	if in.FIFOEnabled != nil {
		fifoEnabled = *in.FIFOEnabled
	}
	order, err := h.uc.Confirm(c.Context(), id, GetUserID(c), fifoEnabled)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order, ""))
}

// GetByID godoc
// @Summary      Buscar pedido por ID
// @Description  Pedidos de venda confirmados trazem também o estado de custeio (fifo, eligible ou legacy).
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	order, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	fifoState := ""
	if order.Kind == entity.OrderKindVenda && order.Status == entity.OrderStatusConfirmado {
		fifoState, err = h.reconcileUC.ClassifyOrder(c.Context(), order)
		if err != nil {
			return respondDomainError(c, err)
		}
	}
	return c.JSON(toOrderResponse(order, fifoState))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "COMPRA ou VENDA"
// @Param        status  query  string  false  "RASCUNHO, CONFIRMADO ou CANCELADO"
// @Param        limit   query  int     false  "Limite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	kind := c.Query("kind")
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit > 100 {
		limit = 100
	}
	list, err := h.uc.List(c.Context(), kind, status, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, order := range list {
		out.Items = append(out.Items, *toOrderResponse(order, ""))
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Baixar PDF do pedido
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadOrderPDF(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}

func toOrderResponse(order *entity.Order, fifoState string) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           order.ID,
		Kind:         order.Kind,
		Status:       order.Status,
		PartnerID:    order.PartnerID,
		Document:     order.Document,
		FreightTotal: order.FreightTotal,
		OtherCosts:   order.OtherCosts,
		ItemsTotal:   order.ItemsTotal,
		Total:        order.Total,
		Notes:        order.Notes,
		FIFOState:    fifoState,
		Items:        make([]dto.OrderItemResponse, 0, len(order.Items)),
		ConfirmedAt:  order.ConfirmedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return out
}
