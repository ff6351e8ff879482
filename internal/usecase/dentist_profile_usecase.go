package usecase

import (
	"context"

	"denticare-server/internal/converter"
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DentistProfileUsecase interface {
	GetDentist(ctx context.Context, userID uuid.UUID) (*dto.DentistProfileResponse, error)
	GetAllDentists(ctx context.Context) (*dto.DentistListResponse, error)
	UpdateDentist(ctx context.Context, userID uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistProfileResponse, error)
}

type dentistProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	dentistRepo repository.DentistProfileRepository
	userRepo    repository.UserRepository
}

func NewDentistProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dentistRepo repository.DentistProfileRepository,
	userRepo repository.UserRepository,
) DentistProfileUsecase {
	return &dentistProfileUsecase{
		db:          db,
		log:         log,
		dentistRepo: dentistRepo,
		userRepo:    userRepo,
	}
}

func (u *dentistProfileUsecase) GetDentist(ctx context.Context, userID uuid.UUID) (*dto.DentistProfileResponse, error) {
	profile, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find dentist: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}

	return converter.DentistProfileToResponse(profile), nil
}

// GetAllDentists lists active dentists for the public booking flow.
func (u *dentistProfileUsecase) GetAllDentists(ctx context.Context) (*dto.DentistListResponse, error) {
	profiles, err := u.dentistRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list dentists: %+v", err)
		return nil, err
	}

	return &dto.DentistListResponse{
		Dentists: converter.DentistProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *dentistProfileUsecase) UpdateDentist(ctx context.Context, userID uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistProfileResponse, error) {
	profile, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find dentist: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.dentistRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update dentist: %+v", err)
		return nil, err
	}

	if req.FullName != "" {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		user.FullName = req.FullName
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
		profile.User = *user
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DentistProfileToResponse(profile), nil
}
