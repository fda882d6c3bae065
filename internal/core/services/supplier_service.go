package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
)

type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) portssvc.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	supplier := domain.Supplier{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.supplierRepo.SaveSupplier(ctx, supplier)
	if err != nil {
		logger.Error("Failed to save supplier", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	logger.Info("Supplier created", slog.Int64("supplier_id", saved.SupplierID))
	return saved, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID int64) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx)
}
