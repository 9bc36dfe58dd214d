package creators

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/creatorvault/creatorvault-backend/pkg/db"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/payouts"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines creator profile operations.
type Service interface {
	Onboard(ctx context.Context, input OnboardInput) (*models.CreatorProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.CreatorProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*models.CreatorProfile, error)
	AddSocialAccount(ctx context.Context, userID uuid.UUID, input SocialAccountInput) (*models.SocialAccount, error)
	RemoveSocialAccount(ctx context.Context, userID, accountID uuid.UUID) error
	ListSocialAccounts(ctx context.Context, userID uuid.UUID) ([]models.SocialAccount, error)
	SetupPayouts(ctx context.Context, userID uuid.UUID, email string) (string, error)
	Stats(ctx context.Context, userID uuid.UUID) (*StatsResult, error)
}

// ServiceParams wires the creator service dependencies.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Connect ConnectClient
	Logger  *logger.Logger
}

type service struct {
	repo    Repository
	tx      txRunner
	connect ConnectClient
	logg    *logger.Logger
}

// OnboardInput captures the creator onboarding form.
type OnboardInput struct {
	UserID    uuid.UUID
	Name      string
	Bio       string
	Niche     string
	Followers int
}

// UpdateInput captures editable creator profile fields. Nil means unchanged.
type UpdateInput struct {
	Name      *string
	Bio       *string
	Niche     *string
	Followers *int
}

// SocialAccountInput captures a social handle to link.
type SocialAccountInput struct {
	Platform   enums.SocialPlatform
	Username   string
	ProfileURL string
	Followers  int
}

// StatsResult is the creator dashboard summary.
type StatsResult struct {
	TotalEarnings      string `json:"total_earnings"`
	PendingEarnings    string `json:"pending_earnings"`
	CompletedCampaigns int    `json:"completed_campaigns"`
	ActiveApplications int64  `json:"active_applications"`
	ActiveContracts    int64  `json:"active_contracts"`
	Tier               string `json:"tier"`
	GuaranteedIncome   string `json:"guaranteed_income"`
}

// NewService wires creator dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "creators repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		connect: params.Connect,
		logg:    params.Logger,
	}, nil
}

func (s *service) Onboard(ctx context.Context, input OnboardInput) (*models.CreatorProfile, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Followers < payouts.MinimumFollowers {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum follower count not met").
			WithDetails(map[string]any{"minimum": payouts.MinimumFollowers, "followers": input.Followers})
	}

	tier, income := payouts.ClassifyTier(input.Followers)
	profile := &models.CreatorProfile{
		UserID:             input.UserID,
		Name:               name,
		Followers:          input.Followers,
		Tier:               tier,
		GuaranteedIncome:   income,
		OnboardingComplete: true,
	}
	if bio := strings.TrimSpace(input.Bio); bio != "" {
		profile.Bio = &bio
	}
	if niche := strings.TrimSpace(input.Niche); niche != "" {
		profile.Niche = &niche
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, profile); err != nil {
			return err
		}
		return repo.PromoteUserRole(ctx, input.UserID, enums.UserRoleCreator)
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "creator profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create creator profile")
	}

	return profile, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id required")
	}
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "creator profile")
	}
	return profile, nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*models.CreatorProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOrDependency(err, "creator profile")
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*models.CreatorProfile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		profile.Name = name
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.Niche != nil {
		profile.Niche = input.Niche
	}

	followersChanged := input.Followers != nil && *input.Followers != profile.Followers
	if followersChanged {
		if *input.Followers < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "followers cannot be negative")
		}
		profile.Followers = *input.Followers
		profile.Tier, profile.GuaranteedIncome = payouts.ClassifyTier(profile.Followers)
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update creator profile")
	}
	return profile, nil
}

func (s *service) AddSocialAccount(ctx context.Context, userID uuid.UUID, input SocialAccountInput) (*models.SocialAccount, error) {
	if !input.Platform.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid social platform")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username required")
	}
	if input.Followers < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "followers cannot be negative")
	}

	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	account := &models.SocialAccount{
		CreatorID: profile.ID,
		Platform:  input.Platform,
		Username:  username,
		Followers: input.Followers,
	}
	if url := strings.TrimSpace(input.ProfileURL); url != "" {
		account.ProfileURL = &url
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.AddSocialAccount(ctx, account); err != nil {
			return err
		}
		return s.reaggregateFollowers(ctx, repo, profile.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add social account")
	}
	return account, nil
}

func (s *service) RemoveSocialAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	if accountID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "account id required")
	}
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	var removed int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.DeleteSocialAccount(ctx, profile.ID, accountID)
		if err != nil {
			return err
		}
		removed = rows
		if removed == 0 {
			return nil
		}
		return s.reaggregateFollowers(ctx, repo, profile.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove social account")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "social account not found")
	}
	return nil
}

func (s *service) ListSocialAccounts(ctx context.Context, userID uuid.UUID) ([]models.SocialAccount, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListSocialAccounts(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list social accounts")
	}
	return accounts, nil
}

// reaggregateFollowers recomputes the profile follower count from the linked
// accounts and re-derives tier and guaranteed income in the same UPDATE.
// A creator with no linked accounts keeps their self-reported count.
func (s *service) reaggregateFollowers(ctx context.Context, repo Repository, creatorID uuid.UUID) error {
	sum, err := repo.SumSocialFollowers(ctx, creatorID)
	if err != nil {
		return err
	}
	if sum <= 0 {
		return nil
	}
	tier, income := payouts.ClassifyTier(sum)
	return repo.UpdateFollowerTier(ctx, creatorID, sum, tier, income)
}

func (s *service) SetupPayouts(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	if s.connect == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "stripe connect is not configured")
	}
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	accountID := ""
	if profile.StripeAccountID != nil {
		accountID = *profile.StripeAccountID
	}
	if accountID == "" {
		accountID, err = s.connect.CreateExpressAccount(ctx, email)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create connect account")
		}
		if err := s.repo.SetStripeAccount(ctx, profile.ID, accountID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist connect account")
		}
	}

	link, err := s.connect.CreateOnboardingLink(ctx, accountID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create onboarding link")
	}
	return link, nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID) (*StatsResult, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Stats(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load creator stats")
	}

	return &StatsResult{
		TotalEarnings:      row.TotalEarnings.StringFixed(2),
		PendingEarnings:    row.PendingEarnings.StringFixed(2),
		CompletedCampaigns: row.CompletedCampaigns,
		ActiveApplications: row.ActiveApplications,
		ActiveContracts:    row.ActiveContracts,
		Tier:               profile.Tier.String(),
		GuaranteedIncome:   profile.GuaranteedIncome.StringFixed(2),
	}, nil
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
