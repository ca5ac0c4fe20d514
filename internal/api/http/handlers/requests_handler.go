package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/dto"
	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/service"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// RequestsHandler serves the public ticket submission forms.
type RequestsHandler struct {
	service *service.TicketService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(ticketService *service.TicketService) *RequestsHandler {
	return &RequestsHandler{service: ticketService}
}

// CreateContract POST /api/requests/contract.
func (h *RequestsHandler) CreateContract(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("customer_name and phone required", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), service.TicketCreateInput{
		Type:         domain.TicketTypeContract,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		PackageID:    req.PackageID,
		Description:  req.Comments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": createdResponse(ticket)})
}

// CreateFault POST /api/requests/fault.
func (h *RequestsHandler) CreateFault(c *fiber.Ctx) error {
	var req dto.CreateFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("customer_name and phone required", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description required", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), service.TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": createdResponse(ticket)})
}

func createdResponse(ticket *domain.Ticket) dto.TicketCreatedResponse {
	return dto.TicketCreatedResponse{
		Folio:     ticket.Folio,
		Type:      ticket.Type,
		Status:    domain.StatusLabel(ticket.Type, ticket.Status),
		CreatedAt: ticket.CreatedAt,
	}
}
