package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/models"
	"github.com/monocle-dev/notes/internal/policy"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
	"github.com/monocle-dev/notes/internal/utils"
)

func (h *Handler) GetUser(ctx *gin.Context) {
	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	userID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	user, err := s.UserGet(ctx.Request.Context(), userID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

// hashPassword reports passwords bcrypt cannot take as a validation error.
func (h *Handler) hashPassword(password string) (string, error) {
	passwordHash, err := h.hasher.Hash(password)

	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperr.Invalid("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return passwordHash, nil
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	users, err := s.UserList(ctx.Request.Context())
	if err != nil {
		apperr.Abort(ctx, fmt.Errorf("list users: %w", err))
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserListResponse(users))
}

// CreateUser is public registration, so no user is required. A requested
// role is validated but accounts are always created with the user role.
func (h *Handler) CreateUser(ctx *gin.Context) {
	var body types.CreateUserRequest

	if !bindJSON(ctx, &body) {
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	passwordHash, err := h.hashPassword(body.Password)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	user, err := s.UserCreate(ctx.Request.Context(), body.Username, passwordHash, models.RoleUser)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	userID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanEditUser(currentUser, userID) {
		apperr.Abort(ctx, apperr.Forbidden("Only admins can change users"))
		return
	}

	var body types.UpdateUserRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.Empty() {
		apperr.Abort(ctx, apperr.Invalid("body", "at least one of username, password, role is required"))
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	fields := store.UserFields{
		Username: body.Username,
		Role:     body.Role,
	}

	if body.Password != nil {
		passwordHash, err := h.hashPassword(*body.Password)
		if err != nil {
			apperr.Abort(ctx, err)
			return
		}
		fields.PasswordHash = &passwordHash
	}

	user, err := s.UserUpdate(ctx.Request.Context(), userID, fields)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

// DeleteUser removes the user and, in the same transaction, all of its notes.
func (h *Handler) DeleteUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	userID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanDeleteUser(currentUser, userID) {
		apperr.Abort(ctx, apperr.Forbidden("Only admins can delete users"))
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if err := s.UserDelete(ctx.Request.Context(), userID); err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{
		Message: fmt.Sprintf("User with id=%d has deleted", userID),
	})
}
