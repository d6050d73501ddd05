package users

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"teamspace/models"
)

// MockUsersService is a mock implementation of the UsersService interface
type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersService) GetUserByEmail(ctx context.Context, email string) (mo.Option[*models.User], error) {
	args := m.Called(ctx, email)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersService) SetCurrentWorkspace(
	ctx context.Context,
	userID, workspaceID string,
) (*models.User, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
