package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-service/internal/usecase/user"
	"library-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Age  *int   `json:"age" binding:"omitempty,gte=0,lte=2147483647"`
}

// UpdateUserNameRequest represents the HTTP request body for renaming a user
type UpdateUserNameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// LoanedBookResponse is one borrowed book in a loan history
type LoanedBookResponse struct {
	Name     string `json:"name"`
	Returned bool   `json:"returned"`
}

// UserLoanHistoryResponse is the loan history of one user
type UserLoanHistoryResponse struct {
	Name  string               `json:"name"`
	Books []LoanedBookResponse `json:"books"`
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		bindError(c, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{Name: req.Name, Age: req.Age})
	if err != nil {
		log.Warn("Gin CreateUser failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": resp.ID})
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)
	query := c.DefaultQuery("query", "")

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Query: query})
	if err != nil {
		log.Warn("Gin ListUsers failed", zap.String("query", query), zap.Error(err))
		handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{ID: u.ID, Name: u.Name, Age: u.Age}
	}

	c.JSON(http.StatusOK, ListUsersResponse{Users: users})
}

// UpdateUserName handles PUT /v1/users/:id
func (h *UserHandler) UpdateUserName(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return
	}

	var req UpdateUserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update user request", zap.Error(err))
		bindError(c, err)
		return
	}

	resp, err := h.uc.UpdateUserName(c.Request.Context(), user.UpdateUserNameRequest{ID: id, Name: req.Name})
	if err != nil {
		log.Warn("Gin UpdateUserName failed", zap.Int64("id", id), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": resp.ID})
}

// DeleteUser handles DELETE /v1/users?name=
func (h *UserHandler) DeleteUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)
	name := c.Query("name")

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{Name: name})
	if err != nil {
		log.Warn("Gin DeleteUser failed", zap.String("name", name), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": resp.ID})
}

// GetUserLoanHistories handles GET /v1/users/loan-histories
func (h *UserHandler) GetUserLoanHistories(c *gin.Context) {
	resp, err := h.uc.GetUserLoanHistories(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Gin GetUserLoanHistories failed", zap.Error(err))
		handleError(c, err)
		return
	}

	out := make([]UserLoanHistoryResponse, len(resp.Users))
	for i, u := range resp.Users {
		books := make([]LoanedBookResponse, len(u.Books))
		for j, b := range u.Books {
			books[j] = LoanedBookResponse{Name: b.Name, Returned: b.Returned}
		}
		out[i] = UserLoanHistoryResponse{Name: u.Name, Books: books}
	}

	c.JSON(http.StatusOK, out)
}
