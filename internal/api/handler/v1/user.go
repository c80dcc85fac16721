package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usmcsd/mycsd-api/internal/api/handler/v1/response"
	"github.com/usmcsd/mycsd-api/internal/domain"
	"github.com/usmcsd/mycsd-api/internal/service"
)

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Profile of the calling user
// @Description  Includes the role-specific profile (matric for students, club name for clubs)
// @Tags         users
// @Produce      json
// @Success      200   {object}   response.ProfileResponse
// @Failure      401   {object}   response.Err
// @Failure      500   {object}   response.Err
// @Router       /me [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	resp := response.ProfileResponse{User: user}

	switch user.Role {
	case domain.RoleStudent:
		student, err := h.svc.GetStudentByUserID(ctx.Request.Context(), user.ID)
		if err != nil && !errors.Is(err, service.ErrProfileNotFound) {
			err = fmt.Errorf("v1.HandleGetMe -> h.svc.GetStudentByUserID -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}
		resp.Matric = student.Matric
	case domain.RoleClub:
		club, err := h.svc.GetClubByUserID(ctx.Request.Context(), user.ID)
		if err != nil && !errors.Is(err, service.ErrProfileNotFound) {
			err = fmt.Errorf("v1.HandleGetMe -> h.svc.GetClubByUserID -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}
		resp.ClubName = club.ClubName
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200     {object}   domain.User
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "userID", userID))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}
