package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// PDFUseCase gera a representação em PDF de um pedido. Só pedidos já
// confirmados podem ser impressos; rascunhos ainda mudam.
type PDFUseCase struct {
	orderRepo   repository.OrderRepository
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	generator   OrderPDFGenerator
}

// NewPDFUseCase constrói o caso de uso injetando todas as dependências.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	generator OrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:   orderRepo,
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadOrderPDF carrega o pedido, o parceiro e os produtos das linhas e
// gera o PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  quando tudo deu certo.
//   - domain.ErrNotFound         se o pedido não existe.
//   - domain.ErrInvalidInput     se o pedido ainda está em rascunho.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obter pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusRascunho {
		return nil, "", fmt.Errorf("%w: o pedido ainda está em rascunho, confirme antes de gerar o PDF", domain.ErrInvalidInput)
	}

	partner, err := uc.partnerRepo.GetByID(ctx, order.PartnerID)
	if err != nil || partner == nil {
		return nil, "", fmt.Errorf("pdf: obter parceiro: %w", err)
	}

	enriched := make([]OrderItemForPDF, 0, len(order.Items))
	for _, item := range order.Items {
		name := "Produto " + item.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(ctx, item.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		enriched = append(enriched, OrderItemForPDF{
			OrderItem:   item,
			ProductName: name,
		})
	}

	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, order, partner, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: geração falhou: %w", err)
	}

	filename = fmt.Sprintf("pedido_%s_%s.pdf", strings.ToLower(order.Kind), order.ID[:8])
	return pdfBytes, filename, nil
}
