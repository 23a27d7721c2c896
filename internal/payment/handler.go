package payment

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/ledger"
)

// Handler exposes payment endpoints.
type Handler struct {
	service *Orchestrator
}

// NewHandler constructs a payment handler.
func NewHandler(service *Orchestrator) *Handler {
	return &Handler{service: service}
}

type destinationRequest struct {
	Type       string `json:"type"`
	AccountURI string `json:"account_uri"`
}

type sendRequest struct {
	Username          string             `json:"username"`
	Password          string             `json:"password"`
	SourceAmount      string             `json:"source_amount"`
	DestinationAmount string             `json:"destination_amount"`
	Destination       destinationRequest `json:"destination"`
	Path              Path               `json:"path"`
}

func (r sendRequest) toRequest() Request {
	return Request{
		Username:          r.Username,
		Password:          r.Password,
		SourceAmount:      r.SourceAmount,
		DestinationAmount: r.DestinationAmount,
		Destination: Destination{
			Type:       r.Destination.Type,
			AccountURI: r.Destination.AccountURI,
		},
		Path: r.Path,
	}
}

// Quote finds a payment path for the requested amount without executing it.
func (h *Handler) Quote(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	path, err := h.service.FindPath(c.UserContext(), req.toRequest())
	if err != nil {
		return sendError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"path": path})
}

// Send executes a direct or cross-ledger payment. A foreign destination with
// no precomputed path is quoted first.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	request := req.toRequest()
	if request.Destination.Type == destinationForeign && len(request.Path) == 0 {
		path, err := h.service.FindPath(c.UserContext(), request)
		if err != nil {
			return sendError(err)
		}
		request.Path = path
	}

	transfer, err := h.service.Send(c.UserContext(), request)
	if err != nil {
		return sendError(err)
	}
	return c.Status(http.StatusCreated).JSON(transfer)
}

func sendError(err error) error {
	var transport *ledger.TransportError
	switch {
	case errors.Is(err, ErrAmountAmbiguous), errors.Is(err, ErrMalformedPath):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.As(err, &transport):
		return fiber.NewError(http.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
