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

type ReminderService interface {
	CreateReminder(ctx context.Context, caller domain.User, reminder domain.Reminder) (domain.Reminder, error)
	ListReminders(ctx context.Context, caller domain.User) ([]domain.Reminder, error)
	UpcomingReminders(ctx context.Context, caller domain.User) ([]domain.Reminder, error)
	UpdateReminder(ctx context.Context, caller domain.User, reminder domain.Reminder) (domain.Reminder, error)
	DeleteReminder(ctx context.Context, caller domain.User, reminderID uint) error
}

type ReminderHandler struct {
	svc  ReminderService
	uSvc UserService
}

func NewReminderHandler(svc ReminderService, uSvc UserService) *ReminderHandler {
	return &ReminderHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateReminder godoc
// @Summary      Create a reminder for the calling student
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        request   body      request.ReminderRequest true "request body"
// @Success      201      {object}   domain.Reminder
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/reminders [post]
// @Security BearerAuth
func (h *ReminderHandler) HandleCreateReminder(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reminder, err := h.svc.CreateReminder(ctx.Request.Context(), user, domain.Reminder{
		Name:  req.Name,
		Date:  req.ParsedDate(),
		Time:  req.Time,
		Venue: req.Venue,
		Notes: req.Notes,
	})
	if err != nil {
		renderReminderErr(ctx, "v1.HandleCreateReminder -> h.svc.CreateReminder", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, reminder)
}

// HandleListReminders godoc
// @Summary      List the calling student's reminders
// @Description  ?upcoming=true restricts to today and later, soonest first
// @Tags         reminders
// @Produce      json
// @Param        upcoming   query     bool  false  "only today and later"
// @Success      200       {array}   domain.Reminder
// @Failure      403       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /me/reminders [get]
// @Security BearerAuth
func (h *ReminderHandler) HandleListReminders(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var (
		reminders []domain.Reminder
		err       error
	)
	if ctx.Query("upcoming") == "true" {
		reminders, err = h.svc.UpcomingReminders(ctx.Request.Context(), user)
	} else {
		reminders, err = h.svc.ListReminders(ctx.Request.Context(), user)
	}
	if err != nil {
		renderReminderErr(ctx, "v1.HandleListReminders", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, reminders)
}

// HandleUpdateReminder godoc
// @Summary      Update one of the calling student's reminders
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        reminderID   path      int  true  "reminder ID"
// @Param        request      body      request.ReminderRequest true "request body"
// @Success      200         {object}   domain.Reminder
// @Failure      400         {object}   response.Err
// @Failure      403         {object}   response.Err
// @Failure      404         {object}   response.Err
// @Failure      500         {object}   response.Err
// @Router       /me/reminders/{reminderID} [put]
// @Security BearerAuth
func (h *ReminderHandler) HandleUpdateReminder(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	reminderID, respErr := parseIDParam(ctx, "reminderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reminder, err := h.svc.UpdateReminder(ctx.Request.Context(), user, domain.Reminder{
		ID:    reminderID,
		Name:  req.Name,
		Date:  req.ParsedDate(),
		Time:  req.Time,
		Venue: req.Venue,
		Notes: req.Notes,
	})
	if err != nil {
		renderReminderErr(ctx, "v1.HandleUpdateReminder -> h.svc.UpdateReminder", reminderID, err)

		return
	}

	ctx.JSON(http.StatusOK, reminder)
}

// HandleDeleteReminder godoc
// @Summary      Delete one of the calling student's reminders
// @Tags         reminders
// @Produce      json
// @Param        reminderID   path      int  true  "reminder ID"
// @Success      204          "no content"
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /me/reminders/{reminderID} [delete]
// @Security BearerAuth
func (h *ReminderHandler) HandleDeleteReminder(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	reminderID, respErr := parseIDParam(ctx, "reminderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteReminder(ctx.Request.Context(), user, reminderID); err != nil {
		renderReminderErr(ctx, "v1.HandleDeleteReminder -> h.svc.DeleteReminder", reminderID, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

func renderReminderErr(ctx *gin.Context, caller string, reminderID uint, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
	case errors.Is(err, service.ErrReminderInPast):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrReminderInPast))
	case errors.Is(err, service.ErrReminderNotFound):
		response.RenderErr(ctx, response.ErrNotFound("reminder", "reminderID", reminderID))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", caller, err)))
	}
}
