package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorlite/erp-api/internal/application/dto"
	"github.com/gestorlite/erp-api/internal/domain"
)

// respondDomainError mapeia os erros de domínio para status HTTP e códigos
// estáveis. Erros desconhecidos viram 500 com a mensagem original.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "ESTOQUE_INSUFICIENTE",
			Message: "estoque insuficiente para atender a saída",
		})
	case errors.Is(err, domain.ErrQuantidadeInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "QUANTIDADE_INVALIDA",
			Message: "quantidade inválida para a operação",
		})
	case errors.Is(err, domain.ErrCustoInvalido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "CUSTO_INVALIDO",
			Message: "custo ou valor unitário inválido",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "dados inválidos",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "recurso não encontrado",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: "recurso duplicado",
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: "operação conflita com o estado atual do recurso",
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "o email já está cadastrado",
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "credenciais inválidas",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "acesso negado",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: err.Error(),
	})
}
