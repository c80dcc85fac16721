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

type AttendanceService interface {
	ResolveEvent(ctx context.Context, token string) (domain.EventView, error)
	RecordAttendance(ctx context.Context, caller domain.User, token string) (domain.AttendanceRecord, error)
	Attendees(ctx context.Context, caller domain.User, eventID uint) ([]domain.AttendanceRecord, error)
}

type AttendanceHandler struct {
	svc  AttendanceService
	uSvc UserService
}

func NewAttendanceHandler(svc AttendanceService, uSvc UserService) *AttendanceHandler {
	return &AttendanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleResolveEvent godoc
// @Summary      Resolve an attendance token to its event
// @Description  Backs the check-in page a student lands on after scanning a QR code
// @Tags         attendance
// @Produce      json
// @Param        token   path      string  true  "attendance token"
// @Success      200    {object}   domain.EventView
// @Failure      404    {object}   response.Err
// @Failure      500    {object}   response.Err
// @Router       /event-attendance/{token} [get]
func (h *AttendanceHandler) HandleResolveEvent(ctx *gin.Context) {
	view, err := h.svc.ResolveEvent(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "token", ctx.Param("token")))

			return
		}

		err = fmt.Errorf("v1.HandleResolveEvent -> h.svc.ResolveEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleRecordAttendance godoc
// @Summary      Record the calling student's attendance
// @Description  Idempotent per (event, student); repeats return 409
// @Tags         attendance
// @Produce      json
// @Param        token   path      string  true  "attendance token"
// @Success      201    {object}   response.RecordedResponse
// @Failure      403    {object}   response.Err
// @Failure      404    {object}   response.Err
// @Failure      409    {object}   response.Err
// @Failure      500    {object}   response.Err
// @Router       /event-attendance/{token} [post]
// @Security BearerAuth
func (h *AttendanceHandler) HandleRecordAttendance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	record, err := h.svc.RecordAttendance(ctx.Request.Context(), user, ctx.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "token", ctx.Param("token")))
		case errors.Is(err, service.ErrAttendanceClosed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAttendanceClosed))
		case errors.Is(err, service.ErrAlreadyRecorded):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRecorded))
		default:
			err = fmt.Errorf("v1.HandleRecordAttendance -> h.svc.RecordAttendance -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.RecordedResponse{
		Message: "attendance recorded",
		EventID: record.EventID,
	})
}

// HandleListAttendees godoc
// @Summary      List an event's attendance records
// @Tags         attendance
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {array}    domain.AttendanceRecord
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/attendees [get]
// @Security BearerAuth
func (h *AttendanceHandler) HandleListAttendees(ctx *gin.Context) {
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

	records, err := h.svc.Attendees(ctx.Request.Context(), user, eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		default:
			err = fmt.Errorf("v1.HandleListAttendees -> h.svc.Attendees -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, records)
}
