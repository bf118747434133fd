package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/xcommerce/backend/internal/adapter/auth"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port/mock"
	"github.com/xcommerce/backend/internal/core/service"
	"github.com/xcommerce/backend/internal/core/utils"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, events *mock.MockEventPublisher)

func TestService_RegisterUser(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type registerTest struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Username: "test",
		Password: hashedPass,
		Email:    "test@example.com",
		ID:       1,
	}

	tests := []registerTest{
		{
			name: "Register good",
			user: domain.User{Username: user.Username, Password: "test"},
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByUsername(gomock.Any(), user.Username).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Username: user.Username, Password: "test"},
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByUsername(gomock.Any(), user.Username).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			events := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, events)

			s, err := service.NewService(repo, ts, events, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type loginTest struct {
		name     string
		user     domain.User
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Username: "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []loginTest{
		{
			name: "Login good",
			user: domain.User{Username: user.Username, Password: "test", ID: 1},
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByUsername(gomock.Any(), user.Username).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name: "Password bad",
			user: domain.User{Username: user.Username, Password: "hacker"},
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByUsername(gomock.Any(), user.Username).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Login bad",
			user: domain.User{Username: "hacker", Password: "test"},
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByUsername(gomock.Any(), "hacker").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts, err := auth.New()
			assert.NoError(t, err)

			events := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, events)

			s, err := service.NewService(repo, ts, events, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.user.Username, test.user.Password)
			assert.Equal(t, test.expError, err)

			if token != "" {
				payload, err := ts.VerifyToken(token)
				assert.NoError(t, err)
				assert.Equal(t, payload.UserID, test.user.ID)
			}
		})
	}
}

func TestService_UpdateAddress(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	address := domain.Address{
		ID:           7,
		UserID:       1,
		FirstName:    "Jo",
		LastName:     "Doe",
		Phone:        "555-0101",
		CountryID:    1,
		City:         "Springfield",
		AddressLine1: "742 Evergreen Terrace",
		AddressType:  "home",
	}

	type updateTest struct {
		name     string
		userID   uint64
		mock     prepareMocks
		expError error
	}

	tests := []updateTest{
		{
			name:   "Update own address",
			userID: 1,
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().ReadAddress(gomock.Any(), address.ID).Return(&address, nil)
				repo.EXPECT().UpdateAddress(gomock.Any(), gomock.Any()).Return(&address, nil)
			},
			expError: nil,
		},
		{
			name:   "Update foreign address",
			userID: 2,
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().ReadAddress(gomock.Any(), address.ID).Return(&address, nil)
			},
			expError: domain.ErrForbidden,
		},
		{
			name:   "Update missing address",
			userID: 1,
			mock: func(repo *mock.MockRepository, events *mock.MockEventPublisher) {
				repo.EXPECT().ReadAddress(gomock.Any(), address.ID).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			events := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, events)

			s, err := service.NewService(repo, ts, events, logger)
			assert.NoError(t, err)

			updated := address
			_, err = s.UpdateAddress(context.Background(), test.userID, &updated)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_DeleteAddress(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	address := domain.Address{ID: 7, UserID: 1}

	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	events := mock.NewMockEventPublisher(mockCtrl)

	repo.EXPECT().ReadAddress(gomock.Any(), address.ID).Return(&address, nil)
	repo.EXPECT().DeleteAddress(gomock.Any(), address.ID).Return(nil)

	s, err := service.NewService(repo, ts, events, logger)
	assert.NoError(t, err)

	err = s.DeleteAddress(context.Background(), 1, address.ID)
	assert.NoError(t, err)

	repo.EXPECT().ReadAddress(gomock.Any(), address.ID).Return(&address, nil)
	err = s.DeleteAddress(context.Background(), 2, address.ID)
	assert.Equal(t, domain.ErrForbidden, err)
}
