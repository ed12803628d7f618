package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	usecase "library-service/internal/usecase/user"
	pkgerrors "library-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.UserUsecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, req usecase.ListUsersRequest) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateUserName(ctx context.Context, req usecase.UpdateUserNameRequest) (*usecase.UpdateUserNameResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UpdateUserNameResponse), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) (*usecase.DeleteUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeleteUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUserLoanHistories(ctx context.Context) (*usecase.UserLoanHistoriesResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UserLoanHistoriesResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *UserHandler, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))
	return gin.New(), handler, mockUsecase
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.MatchedBy(func(req usecase.CreateUserRequest) bool {
			return req.Name == "A" && req.Age != nil && *req.Age == 30
		})).Return(&usecase.CreateUserResponse{ID: 1}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A", "age": 30}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})

	t.Run("Null Age", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "A"}).
			Return(&usecase.CreateUserResponse{ID: 2}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A", "age": nil}))

		assert.Equal(t, http.StatusCreated, w.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.POST("/users", handler.CreateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/users", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Negative Age", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A", "age": -3}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Age Out Of Range", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A", "age": 3_000_000_000}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Internal Error Hides Cause", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewInternalError("failed to create user", errors.New("dial tcp: refused")))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A"}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal_error","message":"failed to create user"}`, w.Body.String())
	})

	t.Run("Usecase Error", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("internal error"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/users", map[string]any{"name": "A"}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal_error")
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		age := 20
		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Query: "us"}).Return(&usecase.ListUsersResponse{
			Users: []usecase.User{
				{ID: 1, Name: "User 1"},
				{ID: 2, Name: "User 2", Age: &age},
			},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/users?query=us", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[{"id":1,"name":"User 1","age":null},{"id":2,"name":"User 2","age":20}]}`, w.Body.String())
	})

	t.Run("Invalid Query", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/users", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewValidationError("query", "invalid search query: search query contains invalid characters"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/users?query=%3Cscript%3E", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateUserName(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUserName)

		mockUsecase.On("UpdateUserName", mock.Anything, usecase.UpdateUserNameRequest{ID: 1, Name: "B"}).
			Return(&usecase.UpdateUserNameResponse{ID: 1}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("PUT", "/users/1", map[string]any{"name": "B"}))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUserName)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("PUT", "/users/abc", map[string]any{"name": "B"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/users/:id", handler.UpdateUserName)

		mockUsecase.On("UpdateUserName", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewNotFoundError("user", "user not found: id=9"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("PUT", "/users/9", map[string]any{"name": "B"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/users", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{Name: "A"}).
			Return(&usecase.DeleteUserResponse{ID: 1}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("DELETE", "/users?name=A", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/users", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{Name: "A"}).
			Return(nil, pkgerrors.NewConflictError("user", "2 users are named \"A\""))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("DELETE", "/users?name=A", nil))

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "conflict", resp.Error)
	})
}

func TestGetUserLoanHistories(t *testing.T) {
	r, handler, mockUsecase := setupTest(t)
	r.GET("/users/loan-histories", handler.GetUserLoanHistories)

	mockUsecase.On("GetUserLoanHistories", mock.Anything).Return(&usecase.UserLoanHistoriesResponse{
		Users: []usecase.UserLoanHistory{
			{Name: "A", Books: []usecase.LoanedBook{{Name: "x", Returned: true}}},
			{Name: "B", Books: []usecase.LoanedBook{}},
		},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/users/loan-histories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"A","books":[{"name":"x","returned":true}]},{"name":"B","books":[]}]`, w.Body.String())
}
