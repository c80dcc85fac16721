package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usmcsd/mycsd-api/internal/api/handler/v1/response"
	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/service"
)

type PointsService interface {
	AssignPoints(ctx context.Context, caller domain.User, eventID uint) (domain.AssignmentResult, error)
	MyPoints(ctx context.Context, caller domain.User) (int, error)
	MyCredits(ctx context.Context, caller domain.User) ([]domain.PointCredit, error)
}

type PointsHandler struct {
	svc  PointsService
	uSvc UserService
}

func NewPointsHandler(svc PointsService, uSvc UserService) *PointsHandler {
	return &PointsHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAssignPoints godoc
// @Summary      Assign points to every attendee of a completed event
// @Description  Atomic and idempotent; repeating the call returns 409
// @Tags         points
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   response.AssignmentResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/assign-points [post]
// @Security BearerAuth
func (h *PointsHandler) HandleAssignPoints(ctx *gin.Context) {
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

	result, err := h.svc.AssignPoints(ctx.Request.Context(), user, eventID)
	if err != nil {
		var refused *domain.AssignmentRefusedError

		switch {
		case errors.As(err, &refused):
			if refused.Reason == domain.RefusalNotAdmin {
				response.RenderErr(ctx, response.ErrPermissionDenied(refused))
			} else {
				response.RenderErr(ctx, response.ErrConflict(refused))
			}
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrAlreadyAssigned):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyAssigned))
		default:
			err = fmt.Errorf("v1.HandleAssignPoints -> h.svc.AssignPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.AssignmentResponse{
		Message:          "points assigned",
		EventID:          result.EventID,
		PointsPerPerson:  result.PointsPerPerson,
		StudentsCredited: result.StudentsCredited,
	})
}

// HandleMyPoints godoc
// @Summary      Total points of the calling student
// @Tags         points
// @Produce      json
// @Success      200   {object}   response.MyPointsResponse
// @Failure      403   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /me/points [get]
// @Security BearerAuth
func (h *PointsHandler) HandleMyPoints(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	total, err := h.svc.MyPoints(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))

			return
		}

		err = fmt.Errorf("v1.HandleMyPoints -> h.svc.MyPoints -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MyPointsResponse{TotalPoints: total})
}

// HandleMyCredits godoc
// @Summary      Point credit history of the calling student
// @Tags         points
// @Produce      json
// @Success      200   {array}    domain.PointCredit
// @Failure      403   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /me/credits [get]
// @Security BearerAuth
func (h *PointsHandler) HandleMyCredits(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	credits, err := h.svc.MyCredits(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))

			return
		}

		err = fmt.Errorf("v1.HandleMyCredits -> h.svc.MyCredits -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, credits)
}
