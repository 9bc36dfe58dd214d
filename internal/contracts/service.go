package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput)
}

// brandUsers resolves a brand profile to the user behind it, for
// notification delivery.
type brandUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error)
}

// Service exposes contract reads and the creator signature path.
type Service interface {
	Sign(ctx context.Context, creatorID, contractID uuid.UUID) (*models.Contract, error)
	Get(ctx context.Context, contractID uuid.UUID) (*models.Contract, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error)
	ListForBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error)
}

// ServiceParams wires the contract service dependencies.
type ServiceParams struct {
	Repo     Repository
	Brands   brandUsers
	Notifier notifier
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repository
	brands   brandUsers
	notifier notifier
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires contract dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contracts repository required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		brands:   params.Brands,
		notifier: params.Notifier,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Sign records the creator's counter-signature on a pending contract and
// activates it. The brand signed at approval time, so this is the second and
// final signature.
func (s *service) Sign(ctx context.Context, creatorID, contractID uuid.UUID) (*models.Contract, error) {
	contract, err := s.repo.GetByID(ctx, contractID)
	if err != nil {
		return nil, notFoundOrDependency(err, "contract")
	}
	if contract.CreatorID != creatorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "contract belongs to another creator")
	}
	if contract.Status != enums.ContractStatusPending || contract.CreatorSigned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "contract is already signed").
			WithDetails(map[string]any{"status": contract.Status.String()})
	}

	updated, err := s.repo.SignByCreator(ctx, contractID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign contract")
	}
	if updated == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "contract is already signed")
	}

	s.notifyBrand(ctx, contract)

	contract, err = s.repo.GetByID(ctx, contractID)
	if err != nil {
		return nil, notFoundOrDependency(err, "contract")
	}
	return contract, nil
}

func (s *service) notifyBrand(ctx context.Context, contract *models.Contract) {
	if s.notifier == nil || s.brands == nil {
		return
	}
	brand, err := s.brands.GetByID(ctx, contract.BrandID)
	if err != nil {
		s.logg.Warn(ctx, "resolving brand for signature notification failed")
		return
	}
	s.notifier.Notify(ctx, notifications.NotifyInput{
		UserID:  brand.UserID,
		Type:    enums.NotificationContractSigned,
		Title:   "Contract signed",
		Message: "A creator signed their sponsorship contract.",
		Link:    "/contracts/" + contract.ID.String(),
	})
}

func (s *service) Get(ctx context.Context, contractID uuid.UUID) (*models.Contract, error) {
	contract, err := s.repo.GetByID(ctx, contractID)
	if err != nil {
		return nil, notFoundOrDependency(err, "contract")
	}
	return contract, nil
}

func (s *service) ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListByCreator(ctx, creatorID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return rows, next, nil
}

func (s *service) ListForBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListByBrand(ctx, brandID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return rows, next, nil
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
