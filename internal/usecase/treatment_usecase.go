package usecase

import (
	"context"
	"errors"
	"strconv"

	"denticare-server/internal/converter"
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
	"denticare-server/internal/domain/repository"
	"denticare-server/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTreatmentNotFound = errors.New("treatment not found")

type TreatmentUsecase interface {
	CreateTreatment(ctx context.Context, actor Actor, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	GetTreatment(ctx context.Context, id int) (*dto.TreatmentResponse, error)
	GetAllTreatments(ctx context.Context) (*dto.TreatmentListResponse, error)
	UpdateTreatment(ctx context.Context, actor Actor, id int, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error)
	DeleteTreatment(ctx context.Context, actor Actor, id int) error
}

type treatmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	treatmentRepo repository.TreatmentRepository
	auditService  service.AuditService
}

func NewTreatmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	treatmentRepo repository.TreatmentRepository,
	auditService service.AuditService,
) TreatmentUsecase {
	return &treatmentUsecase{
		db:            db,
		log:           log,
		treatmentRepo: treatmentRepo,
		auditService:  auditService,
	}
}

func (u *treatmentUsecase) CreateTreatment(ctx context.Context, actor Actor, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	treatment := &entity.Treatment{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.treatmentRepo.Create(tx, treatment); err != nil {
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionTreatmentCreate, "treatment", strconv.Itoa(treatment.ID), treatment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) GetTreatment(ctx context.Context, id int) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find treatment: %+v", err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) GetAllTreatments(ctx context.Context) (*dto.TreatmentListResponse, error) {
	treatments, err := u.treatmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list treatments: %+v", err)
		return nil, err
	}

	return &dto.TreatmentListResponse{
		Treatments: converter.TreatmentsToResponses(treatments),
		Total:      len(treatments),
	}, nil
}

func (u *treatmentUsecase) UpdateTreatment(ctx context.Context, actor Actor, id int, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find treatment: %+v", err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	before := *treatment

	if req.Name != "" {
		treatment.Name = req.Name
	}
	if req.Description != "" {
		treatment.Description = req.Description
	}
	if req.Price != nil {
		treatment.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		treatment.DurationMinutes = *req.DurationMinutes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.treatmentRepo.Update(tx, treatment); err != nil {
		u.log.Warnf("Failed to update treatment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionTreatmentUpdate, "treatment", strconv.Itoa(id), before, treatment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) DeleteTreatment(ctx context.Context, actor Actor, id int) error {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find treatment: %+v", err)
		return err
	}
	if treatment == nil {
		return ErrTreatmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.treatmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete treatment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrTreatmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionTreatmentDelete, "treatment", strconv.Itoa(id), treatment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
