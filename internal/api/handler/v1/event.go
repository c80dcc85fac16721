package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usmcsd/mycsd-api/internal/api/handler/v1/request"
	"github.com/usmcsd/mycsd-api/internal/api/handler/v1/response"
	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/service"
)

type EventService interface {
	SubmitProposal(ctx context.Context, caller domain.User, event domain.Event) (domain.Event, error)
	Decide(ctx context.Context, caller domain.User, eventID uint, decision domain.EventStatus) (domain.Event, error)
	MarkCompleted(ctx context.Context, caller domain.User, eventID uint) (domain.Event, error)
	ListAll(ctx context.Context, caller domain.User, status domain.EventStatus) ([]domain.Event, error)
	ListOwn(ctx context.Context, caller domain.User, status domain.EventStatus) ([]domain.Event, error)
	AttendanceQR(ctx context.Context, caller domain.User, eventID uint, size int) ([]byte, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitProposal godoc
// @Summary      Submit an event proposal
// @Description  Creates a pending event owned by the calling club
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.ProposalRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleSubmitProposal(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ProposalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.SubmitProposal(ctx.Request.Context(), user, domain.Event{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Date:              req.ParsedDate(),
		ProposedPoints:    req.ProposedPoints,
		ExpectedAttendees: req.ExpectedAttendees,
		AttachmentURL:     req.AttachmentURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))

			return
		}

		err = fmt.Errorf("v1.HandleSubmitProposal -> h.svc.SubmitProposal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleDecide godoc
// @Summary      Approve or reject a proposal
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.DecisionRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/decision [post]
// @Security BearerAuth
func (h *EventHandler) HandleDecide(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Decide(ctx.Request.Context(), user, eventID, domain.EventStatus(req.Decision))
	if err != nil {
		renderEventErr(ctx, "v1.HandleDecide -> h.svc.Decide", eventID, err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleMarkCompleted godoc
// @Summary      Mark an approved event as completed
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   domain.Event
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/complete [post]
// @Security BearerAuth
func (h *EventHandler) HandleMarkCompleted(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	event, err := h.svc.MarkCompleted(ctx.Request.Context(), user, eventID)
	if err != nil {
		renderEventErr(ctx, "v1.HandleMarkCompleted -> h.svc.MarkCompleted", eventID, err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Admins see all events; clubs see their own. Supports ?status= filtering.
// @Tags         events
// @Produce      json
// @Param        status   query      string  false  "status filter"
// @Success      200      {array}    domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	status, ok := service.ValidStatusFilter(ctx.Query("status"))
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown status filter %q", ctx.Query("status"))))

		return
	}

	var (
		events []domain.Event
		err    error
	)
	if user.Role == domain.RoleAdmin {
		events, err = h.svc.ListAll(ctx.Request.Context(), user, status)
	} else {
		events, err = h.svc.ListOwn(ctx.Request.Context(), user, status)
	}
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))

			return
		}

		err = fmt.Errorf("v1.HandleListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleAttendanceQR godoc
// @Summary      Render the event's attendance link as a QR code
// @Tags         events
// @Produce      png
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {string}   binary
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/qr [get]
// @Security BearerAuth
func (h *EventHandler) HandleAttendanceQR(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	png, err := h.svc.AttendanceQR(ctx.Request.Context(), user, eventID, 256)
	if err != nil {
		renderEventErr(ctx, "v1.HandleAttendanceQR -> h.svc.AttendanceQR", eventID, err)

		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func renderEventErr(ctx *gin.Context, caller string, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
	case errors.Is(err, service.ErrInvalidTransition):
		response.RenderErr(ctx, response.ErrConflict(service.ErrInvalidTransition))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", caller, err)))
	}
}
