package rider

import (
	"context"

	domainRider "shipment-tracker/internal/domain/rider"
	"shipment-tracker/internal/logger"
	appErrors "shipment-tracker/pkg/errors"
	"shipment-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements rider use cases
type Service struct {
	repo domainRider.Repository
}

func NewService(repo domainRider.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateRiderRequest) (*RiderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	rider := &domainRider.Rider{
		Name:        utils.SanitizeString(req.Name),
		Phone:       utils.SanitizeString(req.Phone),
		Email:       req.Email,
		VehicleType: utils.SanitizeString(req.VehicleType),
		VehicleReg:  utils.SanitizeString(req.VehicleReg),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, rider); err != nil {
		return nil, err
	}

	logger.Info("Rider created",
		zap.String("rider_id", rider.ID.String()),
		zap.String("event", "rider_created"),
	)

	return ToRiderResponse(rider), nil
}

func (s *Service) Get(ctx context.Context, riderID uuid.UUID) (*RiderResponse, error) {
	rider, err := s.repo.GetByID(ctx, riderID)
	if err != nil {
		return nil, err
	}
	return ToRiderResponse(rider), nil
}

func (s *Service) List(ctx context.Context, req *RiderFilterRequest) (*RiderListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	riders, total, err := s.repo.List(ctx, req.ActiveOnly, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]RiderResponse, len(riders))
	for i, r := range riders {
		responses[i] = *ToRiderResponse(r)
	}

	return &RiderListResponse{
		Riders:   responses,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *Service) Update(ctx context.Context, riderID uuid.UUID, req *UpdateRiderRequest) (*RiderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	rider, err := s.repo.GetByID(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rider.Name = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		rider.Phone = utils.SanitizeString(*req.Phone)
	}
	if req.Email != nil {
		rider.Email = *req.Email
	}
	if req.VehicleType != nil {
		rider.VehicleType = utils.SanitizeString(*req.VehicleType)
	}
	if req.VehicleReg != nil {
		rider.VehicleReg = utils.SanitizeString(*req.VehicleReg)
	}
	if req.IsActive != nil {
		rider.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rider); err != nil {
		return nil, err
	}

	return ToRiderResponse(rider), nil
}

func (s *Service) Delete(ctx context.Context, riderID uuid.UUID) error {
	if err := s.repo.Delete(ctx, riderID); err != nil {
		return err
	}

	logger.Info("Rider deleted",
		zap.String("rider_id", riderID.String()),
		zap.String("event", "rider_deleted"),
	)

	return nil
}
