package types

import "github.com/monocle-dev/notes/internal/models"

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,excludes=:"`
	Password string `json:"password" binding:"required,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,excludes=:"`
	Password *string `json:"password" binding:"omitempty,min=1,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Password == nil && r.Role == nil
}

// UserResponse never carries password material.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func NewUserListResponse(users []models.User) []UserResponse {
	response := make([]UserResponse, 0, len(users))

	for i := range users {
		response = append(response, NewUserResponse(&users[i]))
	}

	return response
}
