package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tespinoza/cuentaclara/internal/domain"
	pkgauth "github.com/tespinoza/cuentaclara/pkg/auth"
	"github.com/tespinoza/cuentaclara/pkg/utils"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"email":"tere@example.com","full_name":"Tere Espinoza","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "tere@example.com", "Tere Espinoza", "password123").Return(&domain.Profile{
					ID:       1,
					Email:    "tere@example.com",
					FullName: "Tere Espinoza",
				}, nil)
				service.EXPECT().GenerateToken(1).Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: "",
		},
		{
			name: "Email already registered",
			body: `{"email":"taken@example.com","full_name":"Tere Espinoza","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "taken@example.com", "Tere Espinoza", "password123").Return(nil, errors.New("email already registered"))
			},
			expectedCode:  http.StatusConflict,
			expectedError: "email already registered",
		},
		{
			name: "Validation failure",
			body: `{"email":"","full_name":"Tere Espinoza","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "", "Tere Espinoza", "password123").
					Return(nil, fmt.Errorf("%w: email is required", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid input: email is required",
		},
		{
			name: "Invalid request body",
			body: `{invalid json`,
			prepareMock: func() {
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"email":"tere@example.com","full_name":"Tere Espinoza","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "tere@example.com", "Tere Espinoza", "password123").Return(&domain.Profile{
					ID:       1,
					Email:    "tere@example.com",
					FullName: "Tere Espinoza",
				}, nil)
				service.EXPECT().
					GenerateToken(1).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"email":"tere@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "tere@example.com", "password123").
					Return(&domain.Profile{
						ID:       1,
						Email:    "tere@example.com",
						FullName: "Tere Espinoza",
					}, nil)

				service.EXPECT().
					GenerateToken(1).
					Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: "",
		},
		{
			name: "Invalid credentials",
			body: `{"email":"tere@example.com","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "tere@example.com", "wrongpassword").
					Return(nil, errors.New("invalid credentials"))
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "invalid credentials",
		},
		{
			name: "Invalid request body",
			body: `{invalid json`,
			prepareMock: func() {
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"email":"tere@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "tere@example.com", "password123").
					Return(&domain.Profile{
						ID:       1,
						Email:    "tere@example.com",
						FullName: "Tere Espinoza",
					}, nil)

				service.EXPECT().
					GenerateToken(1).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID := 1

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  string
	}{
		{
			name: "Profile updated",
			body: `{"full_name":"Teresa Espinoza","avatar_url":"icon:cat"}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateProfile(gomock.Any(), userID, "Teresa Espinoza", "icon:cat").
					Return(&domain.Profile{
						ID:        1,
						Email:     "tere@example.com",
						FullName:  "Teresa Espinoza",
						AvatarURL: "icon:cat",
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"email":"tere@example.com","full_name":"Teresa Espinoza","avatar_url":"icon:cat"}`,
		},
		{
			name: "Blank name rejected",
			body: `{"full_name":"","avatar_url":"icon:cat"}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateProfile(gomock.Any(), userID, "", "icon:cat").
					Return(nil, fmt.Errorf("%w: full name is required", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid input: full name is required",
		},
		{
			name: "Invalid request body",
			body: `{invalid json`,
			prepareMock: func() {
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Service failure",
			body: `{"full_name":"Teresa Espinoza","avatar_url":""}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateProfile(gomock.Any(), userID, "Teresa Espinoza", "").
					Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("PUT", "/api/user/profile", bytes.NewReader([]byte(tt.body)))
			req = req.WithContext(context.WithValue(req.Context(), pkgauth.UserIDKey, userID))
			rr := httptest.NewRecorder()

			handler.UpdateProfile(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}
