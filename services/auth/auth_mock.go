package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teamspace/models"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginOrCreateAccount(
	ctx context.Context,
	req models.ExternalAccountRequest,
) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) RegisterUser(
	ctx context.Context,
	req models.RegisterUserRequest,
) (*models.RegisterUserResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegisterUserResult), args.Error(1)
}

func (m *MockAuthService) VerifyUser(
	ctx context.Context,
	req models.VerifyUserRequest,
) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
