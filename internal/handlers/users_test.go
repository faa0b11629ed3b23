package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestGetMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &models.User{ID: userID, Username: "bob", Email: "bob@x.com", PasswordHash: "hash-value"}

	t.Run("returns public profile", func(t *testing.T) {
		m := NewMockUserAccount(ctrl)
		m.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

		rr := httptest.NewRecorder()
		NewGetMeHandler(m).ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/users/me", nil), userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash-value")
		body := decodeBody(t, rr)
		assert.Equal(t, "bob", body["username"])
	})

	t.Run("no session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewGetMeHandler(NewMockUserAccount(ctrl)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("user vanished", func(t *testing.T) {
		m := NewMockUserAccount(ctrl)
		m.EXPECT().GetByID(gomock.Any(), userID).Return(nil, services.ErrNotFound)

		rr := httptest.NewRecorder()
		NewGetMeHandler(m).ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/users/me", nil), userID))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetUserHandler(t *testing.T) {
	otherID := uuid.New()

	tests := []struct {
		name               string
		id                 string
		setupMocks         func(m *MockUserAccount)
		expectedStatusCode int
	}{
		{
			name: "found",
			id:   otherID.String(),
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetPublicProfile(gomock.Any(), otherID).Return(&models.PublicProfile{ID: otherID, Username: "alice"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "malformed id",
			id:                 "not-a-uuid",
			setupMocks:         func(m *MockUserAccount) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   otherID.String(),
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetPublicProfile(gomock.Any(), otherID).Return(nil, services.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockUserAccount(ctrl)
			tt.setupMocks(m)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/users/"+tt.id, nil), "id", tt.id)
			rr := httptest.NewRecorder()
			NewGetUserHandler(m).ServeHTTP(rr, withUser(req, uuid.New()))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestUpdateMeHandler(t *testing.T) {
	userID := uuid.New()
	user := &models.User{ID: userID, Username: "bob", Email: "bob@x.com"}
	dob := time.Date(1990, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(m *MockUserAccount)
		expectedStatusCode int
	}{
		{
			name: "overwrites profile",
			requestBody: UpdateProfileRequest{
				FullName: "Bob B",
				Username: "bobby",
				Email:    "bob@y.com",
				DOB:      "1990-01-31",
				Gender:   "m",
			},
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.EXPECT().UpdateProfile(gomock.Any(), user, models.ProfileUpdate{
					FullName: "Bob B",
					Username: "bobby",
					Email:    "bob@y.com",
					DOB:      &dob,
					Gender:   "m",
				}).Return(&models.PublicProfile{ID: userID, Username: "bobby"}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "bad dob",
			requestBody:        UpdateProfileRequest{Username: "bob", Email: "bob@x.com", DOB: "31/01/1990"},
			setupMocks:         func(m *MockUserAccount) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "missing email",
			requestBody:        UpdateProfileRequest{Username: "bob"},
			setupMocks:         func(m *MockUserAccount) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "username taken",
			requestBody: UpdateProfileRequest{Username: "alice", Email: "bob@x.com"},
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.EXPECT().UpdateProfile(gomock.Any(), user, gomock.Any()).Return(nil, services.ErrDuplicateIdentifier)
			},
			expectedStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockUserAccount(ctrl)
			tt.setupMocks(m)

			rr := httptest.NewRecorder()
			req := withUser(newJSONRequest(t, http.MethodPut, "/users/me", tt.requestBody), userID)
			NewUpdateMeHandler(m).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestChangePasswordHandler(t *testing.T) {
	userID := uuid.New()
	user := &models.User{ID: userID, Username: "bob"}

	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(m *MockUserAccount)
		expectedStatusCode int
	}{
		{
			name:        "changed",
			requestBody: ChangePasswordRequest{OldPassword: "old-secret", NewPassword: "new-secret"},
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.EXPECT().ChangePassword(gomock.Any(), user, "old-secret", "new-secret").Return(nil)
			},
			expectedStatusCode: http.StatusNoContent,
		},
		{
			name:        "wrong old password",
			requestBody: ChangePasswordRequest{OldPassword: "nope", NewPassword: "new-secret"},
			setupMocks: func(m *MockUserAccount) {
				m.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.EXPECT().ChangePassword(gomock.Any(), user, "nope", "new-secret").Return(services.ErrInvalidCredentials)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "new password too short",
			requestBody:        ChangePasswordRequest{OldPassword: "old-secret", NewPassword: "x"},
			setupMocks:         func(m *MockUserAccount) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := NewMockUserAccount(ctrl)
			tt.setupMocks(m)

			rr := httptest.NewRecorder()
			req := withUser(newJSONRequest(t, http.MethodPut, "/users/me/password", tt.requestBody), userID)
			NewChangePasswordHandler(m).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}

func TestRegisterUserHandlers_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		})
	}

	r := chi.NewRouter()
	RegisterUserHandlers(r, NewMockUserAccount(ctrl), deny)

	for _, target := range []string{"/users/me", "/users/" + uuid.NewString()} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
	}
}
