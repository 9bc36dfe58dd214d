package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput)
}

type contractReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
}

type creatorProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error)
	SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error
}

type brandProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error)
	SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error
}

// Service lets contract participants rate each other once the work settled.
type Service interface {
	Create(ctx context.Context, reviewerID uuid.UUID, input CreateInput) (*models.Review, error)
	ListForReviewee(ctx context.Context, revieweeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error)
}

// ServiceParams wires the review service dependencies.
type ServiceParams struct {
	Repo      Repository
	Contracts contractReader
	Creators  creatorProfiles
	Brands    brandProfiles
	Notifier  notifier
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	contracts contractReader
	creators  creatorProfiles
	brands    brandProfiles
	notifier  notifier
	logg      *logger.Logger
}

// CreateInput captures one rating of the contract counterpart.
type CreateInput struct {
	ContractID   uuid.UUID
	ReviewerRole enums.ParticipantRole
	Rating       int
	Comment      string
	IsPublic     bool
}

// NewService wires review dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews repository required")
	}
	if params.Contracts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contracts repository required")
	}
	if params.Creators == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "creators repository required")
	}
	if params.Brands == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "brands repository required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:      params.Repo,
		contracts: params.Contracts,
		creators:  params.Creators,
		brands:    params.Brands,
		notifier:  params.Notifier,
		logg:      params.Logger,
	}, nil
}

// Create rates the counterpart on a completed contract. A second review by
// the same participant hits the (contract, reviewer) uniqueness and comes
// back as a conflict. The reviewee's cumulative average is recomputed from
// the ledger of reviews rather than adjusted incrementally.
func (s *service) Create(ctx context.Context, reviewerID uuid.UUID, input CreateInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if !input.ReviewerRole.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer role required")
	}

	contract, err := s.contracts.GetByID(ctx, input.ContractID)
	if err != nil {
		return nil, notFoundOrDependency(err, "contract")
	}
	if contract.Status != enums.ContractStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "contract is not completed")
	}

	var revieweeID uuid.UUID
	switch input.ReviewerRole {
	case enums.ParticipantCreator:
		if contract.CreatorID != reviewerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviewer is not the contract creator")
		}
		revieweeID = contract.BrandID
	case enums.ParticipantBrand:
		if contract.BrandID != reviewerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviewer is not the contract brand")
		}
		revieweeID = contract.CreatorID
	}

	review := &models.Review{
		ContractID:   contract.ID,
		CampaignID:   contract.CampaignID,
		ReviewerID:   reviewerID,
		ReviewerRole: input.ReviewerRole,
		RevieweeID:   revieweeID,
		RevieweeRole: input.ReviewerRole.Counterpart(),
		Rating:       input.Rating,
		IsPublic:     input.IsPublic,
	}
	if comment := strings.TrimSpace(input.Comment); comment != "" {
		review.Comment = &comment
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "idx_reviews_contract_reviewer") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "contract already reviewed by this participant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	if err := s.refreshAverage(ctx, review); err != nil {
		s.logg.Error(ctx, "refreshing reviewee rating", err)
	}
	s.notifyReviewee(ctx, review)
	return review, nil
}

func (s *service) refreshAverage(ctx context.Context, review *models.Review) error {
	average, err := s.repo.AverageForReviewee(ctx, review.RevieweeID, review.RevieweeRole)
	if err != nil {
		return err
	}
	if review.RevieweeRole == enums.ParticipantCreator {
		return s.creators.SetAverageRating(ctx, review.RevieweeID, average)
	}
	return s.brands.SetAverageRating(ctx, review.RevieweeID, average)
}

func (s *service) notifyReviewee(ctx context.Context, review *models.Review) {
	if s.notifier == nil {
		return
	}
	var userID uuid.UUID
	if review.RevieweeRole == enums.ParticipantCreator {
		creator, err := s.creators.GetByID(ctx, review.RevieweeID)
		if err != nil {
			s.logg.Warn(ctx, "resolving creator for review notification failed")
			return
		}
		userID = creator.UserID
	} else {
		brand, err := s.brands.GetByID(ctx, review.RevieweeID)
		if err != nil {
			s.logg.Warn(ctx, "resolving brand for review notification failed")
			return
		}
		userID = brand.UserID
	}
	s.notifier.Notify(ctx, notifications.NotifyInput{
		UserID:  userID,
		Type:    enums.NotificationReviewReceived,
		Title:   "New review",
		Message: "You received a new rating on a completed contract.",
		Link:    "/reviews",
	})
}

func (s *service) ListForReviewee(ctx context.Context, revieweeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListForReviewee(ctx, revieweeID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return rows, next, nil
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
