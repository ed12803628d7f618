package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-service/internal/usecase/book"
	"library-service/pkg/logger"
)

// BookHandler handles HTTP requests for books and loans
type BookHandler struct {
	uc  book.BookUsecase
	log *zap.Logger
}

// NewBookHandler creates a new BookHandler instance
func NewBookHandler(uc book.BookUsecase, log *zap.Logger) *BookHandler {
	return &BookHandler{uc: uc, log: log}
}

// CreateBookRequest represents the HTTP request body for registering a book
type CreateBookRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required"`
}

// LoanRequest is the body of both loan and return calls
type LoanRequest struct {
	UserName string `json:"user_name" binding:"required"`
	BookName string `json:"book_name" binding:"required"`
}

// BookStatResponse is the number of books in one category
type BookStatResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// CreateBook handles POST /v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create book request", zap.Error(err))
		bindError(c, err)
		return
	}

	resp, err := h.uc.CreateBook(c.Request.Context(), book.CreateBookRequest{Name: req.Name, Type: req.Type})
	if err != nil {
		log.Warn("Gin CreateBook failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": resp.ID})
}

// LoanBook handles POST /v1/books/loan
func (h *BookHandler) LoanBook(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid loan request", zap.Error(err))
		bindError(c, err)
		return
	}

	resp, err := h.uc.LoanBook(c.Request.Context(), book.LoanBookRequest{UserName: req.UserName, BookName: req.BookName})
	if err != nil {
		log.Warn("Gin LoanBook failed", zap.String("book_name", req.BookName), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan_id": resp.LoanID})
}

// ReturnBook handles PUT /v1/books/return
func (h *BookHandler) ReturnBook(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid return request", zap.Error(err))
		bindError(c, err)
		return
	}

	resp, err := h.uc.ReturnBook(c.Request.Context(), book.ReturnBookRequest{UserName: req.UserName, BookName: req.BookName})
	if err != nil {
		log.Warn("Gin ReturnBook failed", zap.String("book_name", req.BookName), zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan_id": resp.LoanID})
}

// CountLoanedBooks handles GET /v1/books/loan/count
func (h *BookHandler) CountLoanedBooks(c *gin.Context) {
	resp, err := h.uc.CountLoanedBooks(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Gin CountLoanedBooks failed", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": resp.Count})
}

// GetBookStatistics handles GET /v1/books/statistics
func (h *BookHandler) GetBookStatistics(c *gin.Context) {
	resp, err := h.uc.GetBookStatistics(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("Gin GetBookStatistics failed", zap.Error(err))
		handleError(c, err)
		return
	}

	out := make([]BookStatResponse, len(resp.Stats))
	for i, s := range resp.Stats {
		out[i] = BookStatResponse{Type: s.Type, Count: s.Count}
	}

	c.JSON(http.StatusOK, out)
}
