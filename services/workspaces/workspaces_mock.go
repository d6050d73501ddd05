package workspaces

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teamspace/models"
)

// MockWorkspacesService is a mock implementation of the WorkspacesService interface
type MockWorkspacesService struct {
	mock.Mock
}

func (m *MockWorkspacesService) CreateWorkspace(
	ctx context.Context,
	ownerID, name, description string,
) (*models.Workspace, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspacesService) GetWorkspacesForUser(
	ctx context.Context,
	userID string,
) ([]*models.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Workspace), args.Error(1)
}

func (m *MockWorkspacesService) GetWorkspaceByID(
	ctx context.Context,
	userID, workspaceID string,
) (*models.Workspace, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspacesService) GetWorkspaceMembers(
	ctx context.Context,
	userID, workspaceID string,
) ([]*models.WorkspaceMember, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspacesService) GetWorkspaceAnalytics(
	ctx context.Context,
	userID, workspaceID string,
) (*models.WorkspaceAnalytics, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceAnalytics), args.Error(1)
}

func (m *MockWorkspacesService) UpdateWorkspace(
	ctx context.Context,
	userID, workspaceID, name, description string,
) (*models.Workspace, error) {
	args := m.Called(ctx, userID, workspaceID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspacesService) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspacesService) ChangeMemberRole(
	ctx context.Context,
	actorID, workspaceID, memberID string,
	roleName models.RoleName,
) (*models.Member, error) {
	args := m.Called(ctx, actorID, workspaceID, memberID, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}
