package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"teamspace/core"
	"teamspace/db"
	"teamspace/metrics"
	"teamspace/models"
	"teamspace/services"
)

const defaultWorkspaceName = "My Workspace"

// AuthService implements account provisioning and credential verification.
// Provisioning turns one identity assertion into a consistent record set:
// user, account, default workspace, owner member, current-workspace
// pointer - all inside a single transaction.
type AuthService struct {
	usersRepo      *db.PostgresUsersRepository
	accountsRepo   *db.PostgresAccountsRepository
	workspacesRepo *db.PostgresWorkspacesRepository
	rolesRepo      *db.PostgresRolesRepository
	membersRepo    *db.PostgresMembersRepository
	txManager      services.TransactionManager
	collector      metrics.Collector
}

func NewAuthService(
	usersRepo *db.PostgresUsersRepository,
	accountsRepo *db.PostgresAccountsRepository,
	workspacesRepo *db.PostgresWorkspacesRepository,
	rolesRepo *db.PostgresRolesRepository,
	membersRepo *db.PostgresMembersRepository,
	txManager services.TransactionManager,
	collector metrics.Collector,
) *AuthService {
	return &AuthService{
		usersRepo:      usersRepo,
		accountsRepo:   accountsRepo,
		workspacesRepo: workspacesRepo,
		rolesRepo:      rolesRepo,
		membersRepo:    membersRepo,
		txManager:      txManager,
		collector:      collector,
	}
}

// LoginOrCreateAccount resolves an external identity assertion to a user.
// Idempotent upsert keyed on email: an existing user is returned unchanged
// even when the provider differs from any linked account (account linking
// by verified email). A new user gets the full provisioning sequence.
func (s *AuthService) LoginOrCreateAccount(
	ctx context.Context,
	req models.ExternalAccountRequest,
) (*models.User, error) {
	log.Printf("📋 Starting login-or-create for provider: %s, email: %s", req.Provider, req.Email)

	if req.Provider == "" {
		return nil, core.NewValidationError("provider cannot be empty")
	}
	if req.ProviderID == "" {
		return nil, core.NewValidationError("provider ID cannot be empty")
	}
	if req.Email == "" {
		return nil, core.NewValidationError("email cannot be empty")
	}
	if req.DisplayName == "" {
		return nil, core.NewValidationError("display name cannot be empty")
	}

	started := time.Now()
	var resolved *models.User
	var created bool

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		maybeUser, err := s.usersRepo.GetUserByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}

		if maybeUser.IsPresent() {
			resolved = maybeUser.MustGet()
			s.logUnlinkedProvider(txCtx, resolved, req.Provider)
			return nil
		}

		user, err := s.usersRepo.CreateUser(txCtx, req.Email, req.DisplayName, req.Picture, nil)
		if err != nil {
			return err
		}
		log.Printf("📋 Created user: %s", user.ID)

		if _, err := s.provisionDefaults(txCtx, user, req.Provider, req.ProviderID); err != nil {
			return err
		}

		resolved = user
		created = true
		return nil
	})
	if err != nil {
		s.collector.RecordProvisioning(metrics.PathOAuth, metrics.OutcomeFailed)
		if db.IsUniqueViolation(err) {
			// Lost the same-email race: the unique index on users.email
			// aborted this transaction after a concurrent call won.
			return nil, core.NewValidationError("Email already exists")
		}
		return nil, fmt.Errorf("failed to login or create account: %w", err)
	}

	if created {
		s.collector.RecordProvisioning(metrics.PathOAuth, metrics.OutcomeCreated)
		s.collector.RecordProvisioningDuration(time.Since(started))
	} else {
		s.collector.RecordProvisioning(metrics.PathOAuth, metrics.OutcomeExisting)
	}

	log.Printf("📋 Completed successfully - resolved user with ID: %s", resolved.ID)
	return resolved.OmitPassword(), nil
}

// RegisterUser creates a new local-credential user. Unlike
// LoginOrCreateAccount this is a strict create: a duplicate email fails.
func (s *AuthService) RegisterUser(
	ctx context.Context,
	req models.RegisterUserRequest,
) (*models.RegisterUserResult, error) {
	log.Printf("📋 Starting user registration for email: %s", req.Email)

	if req.Email == "" {
		return nil, core.NewValidationError("email cannot be empty")
	}
	if req.Name == "" {
		return nil, core.NewValidationError("name cannot be empty")
	}
	if req.Password == "" {
		return nil, core.NewValidationError("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	started := time.Now()
	var result *models.RegisterUserResult

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		maybeUser, err := s.usersRepo.GetUserByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if maybeUser.IsPresent() {
			return core.NewValidationError("Email already exists")
		}

		user, err := s.usersRepo.CreateUser(txCtx, req.Email, req.Name, nil, &passwordHash)
		if err != nil {
			return err
		}
		log.Printf("📋 Created user: %s", user.ID)

		workspace, err := s.provisionDefaults(txCtx, user, models.ProviderEmail, req.Email)
		if err != nil {
			return err
		}

		result = &models.RegisterUserResult{UserID: user.ID, WorkspaceID: workspace.ID}
		return nil
	})
	if err != nil {
		s.collector.RecordProvisioning(metrics.PathRegister, metrics.OutcomeFailed)
		if db.IsUniqueViolation(err) {
			return nil, core.NewValidationError("Email already exists")
		}
		if core.IsValidationError(err) || core.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.collector.RecordProvisioning(metrics.PathRegister, metrics.OutcomeCreated)
	s.collector.RecordProvisioningDuration(time.Since(started))

	log.Printf("📋 Completed successfully - registered user %s with workspace %s", result.UserID, result.WorkspaceID)
	return result, nil
}

// VerifyUser checks a local credential pair. Missing account and wrong
// password produce the same message so callers cannot tell which was
// wrong; the error kind still differs for the HTTP status mapping.
func (s *AuthService) VerifyUser(
	ctx context.Context,
	req models.VerifyUserRequest,
) (*models.User, error) {
	provider := req.Provider
	if provider == "" {
		provider = models.ProviderEmail
	}
	log.Printf("📋 Starting credential verification for provider: %s", provider)

	maybeAccount, err := s.accountsRepo.GetAccountByProvider(ctx, provider, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !maybeAccount.IsPresent() {
		s.collector.RecordLogin(metrics.OutcomeFailed)
		return nil, core.NewNotFoundError("Invalid email or password")
	}
	account := maybeAccount.MustGet()

	maybeUser, err := s.usersRepo.GetUserByID(ctx, account.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !maybeUser.IsPresent() {
		s.collector.RecordLogin(metrics.OutcomeFailed)
		return nil, core.NewIntegrityError("account references a missing user")
	}
	user := maybeUser.MustGet()

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		s.collector.RecordLogin(metrics.OutcomeFailed)
		return nil, core.NewUnauthorizedError("Invalid email or password")
	}

	s.collector.RecordLogin("success")
	log.Printf("📋 Completed successfully - verified user with ID: %s", user.ID)
	return user.OmitPassword(), nil
}

// provisionDefaults runs the tail of the provisioning sequence for a
// freshly created user: account, default workspace, owner role lookup,
// owner member, current-workspace pointer. Each step depends on the
// identifier produced by the previous one, which is why the whole
// sequence must share the caller's transaction context.
func (s *AuthService) provisionDefaults(
	txCtx context.Context,
	user *models.User,
	provider models.Provider,
	providerID string,
) (*models.Workspace, error) {
	account, err := s.accountsRepo.CreateAccount(txCtx, provider, providerID, user.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("📋 Created account: %s", account.ID)

	workspace, err := s.workspacesRepo.CreateWorkspace(
		txCtx,
		defaultWorkspaceName,
		fmt.Sprintf("Workspace created for %s", user.Name),
		user.ID,
		core.NewInviteCode(),
	)
	if err != nil {
		return nil, err
	}
	log.Printf("📋 Created workspace: %s", workspace.ID)

	maybeRole, err := s.rolesRepo.GetRoleByName(txCtx, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	if !maybeRole.IsPresent() {
		// Seeding precondition: roles are written once by cmd/seed.
		return nil, core.NewNotFoundError("Owner role not found")
	}
	ownerRole := maybeRole.MustGet()

	member, err := s.membersRepo.CreateMember(txCtx, user.ID, workspace.ID, ownerRole.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("📋 Created owner member: %s", member.ID)

	if err := s.usersRepo.UpdateCurrentWorkspace(txCtx, user.ID, workspace.ID); err != nil {
		return nil, err
	}
	user.CurrentWorkspaceID = &workspace.ID

	return workspace, nil
}

// logUnlinkedProvider notes when an existing user signs in through a
// provider that has no account row. The user is still returned unchanged;
// no account is created for the new provider.
func (s *AuthService) logUnlinkedProvider(ctx context.Context, user *models.User, provider models.Provider) {
	accounts, err := s.accountsRepo.GetAccountsByUserID(ctx, user.ID)
	if err != nil {
		log.Printf("📋 Could not inspect accounts for user %s: %v", user.ID, err)
		return
	}
	for _, account := range accounts {
		if account.Provider == provider {
			return
		}
	}
	log.Printf("📋 User %s signed in via %s without a linked %s account", user.ID, provider, provider)
}
