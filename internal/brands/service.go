package brands

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
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines brand profile operations.
type Service interface {
	Onboard(ctx context.Context, input OnboardInput) (*models.BrandProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.BrandProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*models.BrandProfile, error)
	Stats(ctx context.Context, userID uuid.UUID) (*StatsResult, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// OnboardInput captures the brand onboarding form.
type OnboardInput struct {
	UserID      uuid.UUID
	CompanyName string
	Industry    string
	Website     string
	Description string
}

// UpdateInput captures editable brand profile fields. Nil means unchanged.
type UpdateInput struct {
	CompanyName *string
	Industry    *string
	Website     *string
	Description *string
	Logo        *string
}

// StatsResult is the brand dashboard summary.
type StatsResult struct {
	TotalSpent         string `json:"total_spent"`
	ActiveCampaigns    int64  `json:"active_campaigns"`
	CompletedCampaigns int64  `json:"completed_campaigns"`
	CreatorsHired      int64  `json:"creators_hired"`
}

// NewService wires brand dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "brands repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Onboard(ctx context.Context, input OnboardInput) (*models.BrandProfile, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name required")
	}

	profile := &models.BrandProfile{
		UserID:             input.UserID,
		CompanyName:        companyName,
		OnboardingComplete: true,
	}
	if industry := strings.TrimSpace(input.Industry); industry != "" {
		profile.Industry = &industry
	}
	if website := strings.TrimSpace(input.Website); website != "" {
		profile.Website = &website
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		profile.Description = &description
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, profile); err != nil {
			return err
		}
		return repo.PromoteUserRole(ctx, input.UserID, enums.UserRoleBrand)
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "brand profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand profile")
	}

	return profile, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err)
	}
	return profile, nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*models.BrandProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOrDependency(err)
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*models.BrandProfile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name cannot be empty")
		}
		profile.CompanyName = name
	}
	if input.Industry != nil {
		profile.Industry = input.Industry
	}
	if input.Website != nil {
		profile.Website = input.Website
	}
	if input.Description != nil {
		profile.Description = input.Description
	}
	if input.Logo != nil {
		profile.Logo = input.Logo
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand profile")
	}
	return profile, nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID) (*StatsResult, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Stats(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand stats")
	}

	return &StatsResult{
		TotalSpent:         row.TotalSpent.StringFixed(2),
		ActiveCampaigns:    row.ActiveCampaigns,
		CompletedCampaigns: row.CompletedCampaigns,
		CreatorsHired:      row.CreatorsHired,
	}, nil
}

func notFoundOrDependency(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "brand profile not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand profile")
}
