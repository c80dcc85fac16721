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

type GoalService interface {
	CreateGoal(ctx context.Context, caller domain.User, goal domain.Goal) (domain.Goal, error)
	ListGoals(ctx context.Context, caller domain.User, kind domain.GoalKind) ([]service.GoalWithProgress, error)
	UpdateGoal(ctx context.Context, caller domain.User, goal domain.Goal) (domain.Goal, error)
	DeleteGoal(ctx context.Context, caller domain.User, goalID uint) error
}

type GoalHandler struct {
	svc  GoalService
	uSvc UserService
}

func NewGoalHandler(svc GoalService, uSvc UserService) *GoalHandler {
	return &GoalHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateGoal godoc
// @Summary      Create a goal for the calling student
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        request   body      request.GoalRequest true "request body"
// @Success      201      {object}   domain.Goal
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/goals [post]
// @Security BearerAuth
func (h *GoalHandler) HandleCreateGoal(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	goal, err := h.svc.CreateGoal(ctx.Request.Context(), user, domain.Goal{
		Kind:         domain.GoalKind(req.Kind),
		Title:        req.Title,
		TargetPoints: req.TargetPoints,
		Deadline:     req.ParsedDeadline(),
		Milestones:   req.Milestones,
	})
	if err != nil {
		renderGoalErr(ctx, "v1.HandleCreateGoal -> h.svc.CreateGoal", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, goal)
}

// HandleListGoals godoc
// @Summary      List the calling student's goals with derived progress
// @Tags         goals
// @Produce      json
// @Param        kind   query      string  false  "goal kind filter"
// @Success      200   {array}    service.GoalWithProgress
// @Failure      403   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /me/goals [get]
// @Security BearerAuth
func (h *GoalHandler) HandleListGoals(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	goals, err := h.svc.ListGoals(ctx.Request.Context(), user, domain.GoalKind(ctx.Query("kind")))
	if err != nil {
		renderGoalErr(ctx, "v1.HandleListGoals -> h.svc.ListGoals", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, goals)
}

// HandleUpdateGoal godoc
// @Summary      Update one of the calling student's goals
// @Tags         goals
// @Accept       json
// @Produce      json
// @Param        goalID    path      int  true  "goal ID"
// @Param        request   body      request.GoalRequest true "request body"
// @Success      200      {object}   domain.Goal
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/goals/{goalID} [put]
// @Security BearerAuth
func (h *GoalHandler) HandleUpdateGoal(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	goalID, respErr := parseIDParam(ctx, "goalID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	goal, err := h.svc.UpdateGoal(ctx.Request.Context(), user, domain.Goal{
		ID:           goalID,
		Title:        req.Title,
		TargetPoints: req.TargetPoints,
		Deadline:     req.ParsedDeadline(),
		Milestones:   req.Milestones,
		Completed:    req.Completed,
	})
	if err != nil {
		renderGoalErr(ctx, "v1.HandleUpdateGoal -> h.svc.UpdateGoal", goalID, err)

		return
	}

	ctx.JSON(http.StatusOK, goal)
}

// HandleDeleteGoal godoc
// @Summary      Delete one of the calling student's goals
// @Tags         goals
// @Produce      json
// @Param        goalID   path      int  true  "goal ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/goals/{goalID} [delete]
// @Security BearerAuth
func (h *GoalHandler) HandleDeleteGoal(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	goalID, respErr := parseIDParam(ctx, "goalID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteGoal(ctx.Request.Context(), user, goalID); err != nil {
		renderGoalErr(ctx, "v1.HandleDeleteGoal -> h.svc.DeleteGoal", goalID, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

func renderGoalErr(ctx *gin.Context, caller string, goalID uint, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
	case errors.Is(err, service.ErrGoalNotFound):
		response.RenderErr(ctx, response.ErrNotFound("goal", "goalID", goalID))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", caller, err)))
	}
}
