package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usmcsd/mycsd-api/internal/api/handler/v1/response"
	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/service"
)

type StatsService interface {
	AdminStats(ctx context.Context, caller domain.User) (domain.AdminStats, error)
	MonthlyTrend(ctx context.Context, caller domain.User, window int) ([]domain.MonthlyTrendPoint, error)
	EventTypeDistribution(ctx context.Context, caller domain.User) ([]domain.CategoryCount, error)
}

type StatsHandler struct {
	svc  StatsService
	uSvc UserService
}

func NewStatsHandler(svc StatsService, uSvc UserService) *StatsHandler {
	return &StatsHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAdminStats godoc
// @Summary      Dashboard counters for the admin overview
// @Tags         stats
// @Produce      json
// @Success      200   {object}   domain.AdminStats
// @Failure      403   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *StatsHandler) HandleAdminStats(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	stats, err := h.svc.AdminStats(ctx.Request.Context(), user)
	if err != nil {
		renderStatsErr(ctx, "v1.HandleAdminStats -> h.svc.AdminStats", err)

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleMonthlyTrend godoc
// @Summary      Events and points per month, zero-filled
// @Tags         stats
// @Produce      json
// @Param        months   query      int  false  "window size in months (default 6)"
// @Success      200     {array}    domain.MonthlyTrendPoint
// @Failure      403     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /admin/stats/trend [get]
// @Security BearerAuth
func (h *StatsHandler) HandleMonthlyTrend(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	window, _ := strconv.Atoi(ctx.Query("months"))

	trend, err := h.svc.MonthlyTrend(ctx.Request.Context(), user, window)
	if err != nil {
		renderStatsErr(ctx, "v1.HandleMonthlyTrend -> h.svc.MonthlyTrend", err)

		return
	}

	ctx.JSON(http.StatusOK, trend)
}

// HandleEventTypeDistribution godoc
// @Summary      Event counts per category
// @Tags         stats
// @Produce      json
// @Success      200   {array}    domain.CategoryCount
// @Failure      403   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /admin/stats/distribution [get]
// @Security BearerAuth
func (h *StatsHandler) HandleEventTypeDistribution(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	distribution, err := h.svc.EventTypeDistribution(ctx.Request.Context(), user)
	if err != nil {
		renderStatsErr(ctx, "v1.HandleEventTypeDistribution -> h.svc.EventTypeDistribution", err)

		return
	}

	ctx.JSON(http.StatusOK, distribution)
}

func renderStatsErr(ctx *gin.Context, caller string, err error) {
	if errors.Is(err, service.ErrNotAuthorized) {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))

		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", caller, err)))
}
