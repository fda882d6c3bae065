package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
	"github.com/stocktrace/stock_movement_app/internal/utils/filter"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

const (
	// editWindow freezes line items and movement type once elapsed.
	editWindow = 24 * time.Hour
	// deleteWindow rejects deletion once elapsed.
	deleteWindow = 3 * 24 * time.Hour
)

// movementService orchestrates movement business rules: input validation,
// per-line stock adjustment through the stock adapter, and persistence
// through the movement repository.
type movementService struct {
	movementRepo portsrepo.MovementRepositoryFacade
	stockSvc     portssvc.StockAdapterSvc
}

// NewMovementService creates a new movement service.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade, stockSvc portssvc.StockAdapterSvc) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		stockSvc:     stockSvc,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// applyLineStock fetches the referenced product and applies one line's stock
// delta. Outgoing lines are rejected when available stock is below the
// requested quantity. Incoming lines also refresh the product's last stock-in
// timestamp.
func (s *movementService) applyLineStock(ctx context.Context, movementType domain.MovementType, line domain.MovementLine, movementDate time.Time, userID string) error {
	product, err := s.stockSvc.FindProductByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidation("lines", fmt.Sprintf("referenced product %s does not exist", line.ProductID))
		}
		return err
	}

	patch := portsrepo.ProductStockPatch{LastUpdatedBy: userID}
	switch movementType {
	case domain.Outgoing:
		if product.Stock < line.Quantity {
			return apperrors.NewBusinessRule(fmt.Sprintf("insufficient stock for product %s: available %d, requested %d", product.Name, product.Stock, line.Quantity))
		}
		newStock := product.Stock - line.Quantity
		patch.Stock = &newStock
	case domain.Incoming:
		newStock := product.Stock + line.Quantity
		patch.Stock = &newStock
		stockInAt := movementDate
		patch.LastStockInAt = &stockInAt
	default:
		return apperrors.NewValidation("movementType", fmt.Sprintf("unknown movement type %q", movementType))
	}

	if _, err := s.stockSvc.ApplyProductUpdate(ctx, line.ProductID, patch); err != nil {
		return err
	}
	return nil
}

// reverseLineStock undoes one line's stock effect: outgoing lines restore
// stock, incoming lines remove it again, clamped at zero so stock never goes
// negative.
func (s *movementService) reverseLineStock(ctx context.Context, movementType domain.MovementType, line domain.MovementLine, userID string) error {
	product, err := s.stockSvc.FindProductByID(ctx, line.ProductID)
	if err != nil {
		return err
	}

	var newStock int64
	switch movementType {
	case domain.Outgoing:
		newStock = product.Stock + line.Quantity
	case domain.Incoming:
		newStock = product.Stock - line.Quantity
		if newStock < 0 {
			newStock = 0
		}
	default:
		return apperrors.NewValidation("movementType", fmt.Sprintf("unknown movement type %q", movementType))
	}

	patch := portsrepo.ProductStockPatch{Stock: &newStock, LastUpdatedBy: userID}
	if _, err := s.stockSvc.ApplyProductUpdate(ctx, line.ProductID, patch); err != nil {
		return err
	}
	return nil
}

// restoreLinesBestEffort reverses the stock effect of each line, logging and
// swallowing failures. Movement-record consistency wins over stock-count
// consistency in this error path.
func (s *movementService) restoreLinesBestEffort(ctx context.Context, movementType domain.MovementType, lines []domain.MovementLine, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, line := range lines {
		if err := s.reverseLineStock(ctx, movementType, line, userID); err != nil {
			logger.Error("Failed to restore stock for line, continuing",
				slog.String("product_id", line.ProductID),
				slog.Int64("quantity", line.Quantity),
				slog.String("movement_type", string(movementType)),
				slog.String("error", err.Error()))
		}
	}
}

// CreateMovement validates the request, applies each line's stock delta in
// order, then persists the movement.
//
// Line processing is sequential and non-transactional: deltas already applied
// to earlier lines stay applied when a later line fails.
func (s *movementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, creatorUserID string) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movementType := domain.MovementType(strings.ToUpper(req.MovementType))
	if !movementType.IsValid() {
		return nil, apperrors.NewValidation("movementType", fmt.Sprintf("movement type must be %s or %s", domain.Incoming, domain.Outgoing))
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.NewBusinessRule("movement must have at least one line item")
	}

	now := time.Now().UTC()
	movementDate := now
	if req.MovementDate != nil {
		movementDate = req.MovementDate.UTC()
	}

	movementID := uuid.NewString()
	lines := make([]domain.MovementLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Quantity <= 0 {
			return nil, apperrors.NewValidation("lines", fmt.Sprintf("quantity must be positive for product %s", lineReq.ProductID))
		}
		lines[i] = domain.MovementLine{
			LineID:     uuid.NewString(),
			MovementID: movementID,
			ProductID:  lineReq.ProductID,
			Quantity:   lineReq.Quantity,
		}
	}

	for i, line := range lines {
		if err := s.applyLineStock(ctx, movementType, line, movementDate, creatorUserID); err != nil {
			if i > 0 {
				logger.Warn("Movement creation failed mid-way, earlier line deltas remain applied",
					slog.String("movement_id", movementID),
					slog.Int("applied_lines", i),
					slog.String("error", err.Error()))
			}
			return nil, err
		}
	}

	movement := domain.Movement{
		MovementID:   movementID,
		MovementType: movementType,
		Destination:  req.Destination,
		MovementDate: movementDate,
		UserID:       creatorUserID,
		IsActive:     true,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to save movement, reversing applied stock deltas", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		s.restoreLinesBestEffort(ctx, movementType, lines, creatorUserID)
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	logger.Info("Movement created", slog.String("movement_id", movementID), slog.String("movement_type", string(movementType)), slog.Int("line_count", len(lines)))
	return &movement, nil
}

// GetMovementByID retrieves a specific movement with its lines.
func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	if err := uuid.Validate(movementID); err != nil {
		return nil, apperrors.NewValidation("movementID", "movement ID must be a valid UUID")
	}
	return s.movementRepo.FindMovementByID(ctx, movementID)
}

// ListMovements passes the loose listing parameters through to the store.
func (s *movementService) ListMovements(ctx context.Context, params dto.ListMovementsParams) (*domain.MovementPage, error) {
	criteria := portsrepo.MovementListCriteria{
		MovementID:  params.MovementID,
		Type:        params.Type,
		Destination: params.Destination,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Page:        params.Page,
		Limit:       params.Limit,
	}
	return s.movementRepo.ListMovements(ctx, criteria)
}

// UpdateMovement applies changes subject to the edit window. When line items
// or the movement type change, the original lines' stock effect is restored
// best-effort under the original type, then the new lines are validated and
// applied under the new type.
func (s *movementService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, userID string) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := uuid.Validate(movementID); err != nil {
		return nil, apperrors.NewValidation("movementID", "movement ID must be a valid UUID")
	}

	existing, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.TouchesLockedFields() && now.Sub(existing.MovementDate) > editWindow {
		return nil, apperrors.NewBusinessRule("line items and movement type cannot be changed more than 24 hours after the movement date")
	}

	newType := existing.MovementType
	if req.MovementType != nil {
		newType = domain.MovementType(strings.ToUpper(*req.MovementType))
		if !newType.IsValid() {
			return nil, apperrors.NewValidation("movementType", fmt.Sprintf("movement type must be %s or %s", domain.Incoming, domain.Outgoing))
		}
	}

	movementDate := existing.MovementDate
	if req.MovementDate != nil {
		movementDate = req.MovementDate.UTC()
	}

	update := portsrepo.MovementUpdate{
		Destination:   req.Destination,
		MovementDate:  req.MovementDate,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if req.MovementType != nil {
		update.MovementType = &newType
	}

	if req.TouchesLockedFields() {
		newLines := existing.Lines
		if req.Lines != nil {
			newLines = make([]domain.MovementLine, len(*req.Lines))
			for i, lineReq := range *req.Lines {
				if lineReq.Quantity <= 0 {
					return nil, apperrors.NewValidation("lines", fmt.Sprintf("quantity must be positive for product %s", lineReq.ProductID))
				}
				newLines[i] = domain.MovementLine{
					LineID:     uuid.NewString(),
					MovementID: movementID,
					ProductID:  lineReq.ProductID,
					Quantity:   lineReq.Quantity,
				}
			}
		}

		// Undo the original effect, then apply the new one. Restore failures
		// are logged and swallowed; application failures propagate.
		s.restoreLinesBestEffort(ctx, existing.MovementType, existing.Lines, userID)
		for _, line := range newLines {
			if err := s.applyLineStock(ctx, newType, line, movementDate, userID); err != nil {
				return nil, err
			}
		}
		update.Lines = &newLines
	}

	updated, err := s.movementRepo.UpdateMovement(ctx, movementID, update)
	if err != nil {
		logger.Error("Failed to update movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Movement updated", slog.String("movement_id", movementID))
	return updated, nil
}

// DeleteMovement removes a movement subject to the delete window, reversing
// its stock effect best-effort first, and returns the deleted record.
func (s *movementService) DeleteMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := uuid.Validate(movementID); err != nil {
		return nil, apperrors.NewValidation("movementID", "movement ID must be a valid UUID")
	}

	existing, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	if time.Now().UTC().Sub(existing.MovementDate) > deleteWindow {
		return nil, apperrors.NewBusinessRule("movements older than 3 days cannot be deleted")
	}

	s.restoreLinesBestEffort(ctx, existing.MovementType, existing.Lines, userID)

	if err := s.movementRepo.DeleteMovement(ctx, movementID); err != nil {
		logger.Error("Failed to delete movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Movement deleted", slog.String("movement_id", movementID))
	return existing, nil
}

// ActivateMovement sets the active flag. Not subject to the time windows.
func (s *movementService) ActivateMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error) {
	return s.setActive(ctx, movementID, userID, true)
}

// DeactivateMovement clears the active flag. Not subject to the time windows.
func (s *movementService) DeactivateMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error) {
	return s.setActive(ctx, movementID, userID, false)
}

func (s *movementService) setActive(ctx context.Context, movementID string, userID string, active bool) (*domain.Movement, error) {
	if err := uuid.Validate(movementID); err != nil {
		return nil, apperrors.NewValidation("movementID", "movement ID must be a valid UUID")
	}
	update := portsrepo.MovementUpdate{
		IsActive:      &active,
		LastUpdatedAt: time.Now().UTC(),
		LastUpdatedBy: userID,
	}
	return s.movementRepo.UpdateMovement(ctx, movementID, update)
}

// ListByType lists movements of one type.
func (s *movementService) ListByType(ctx context.Context, movementType string, page dto.PageParams) (*domain.MovementPage, error) {
	if strings.TrimSpace(movementType) == "" {
		return nil, apperrors.NewValidation("type", "movement type is required")
	}
	if !domain.MovementType(strings.ToUpper(movementType)).IsValid() {
		return nil, apperrors.NewBusinessRule(fmt.Sprintf("unsupported movement type %q", movementType))
	}
	return s.movementRepo.ListMovements(ctx, portsrepo.MovementListCriteria{
		Type:  movementType,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// ListByPeriod lists movements between two dates, inclusive.
func (s *movementService) ListByPeriod(ctx context.Context, startDate, endDate string, page dto.PageParams) (*domain.MovementPage, error) {
	start, ok := parseLooseDate(startDate)
	if !ok {
		return nil, apperrors.NewValidation("startDate", "start date must be a valid date")
	}
	end, ok := parseLooseDate(endDate)
	if !ok {
		return nil, apperrors.NewValidation("endDate", "end date must be a valid date")
	}
	if start.After(end) {
		return nil, apperrors.NewBusinessRule("start date must not be after end date")
	}
	pred := filter.Build(filter.WithDateRange(startDate, endDate))
	return s.movementRepo.SearchMovements(ctx, pred, pagination.Normalize(page.Page, page.Limit))
}

// ListByProduct lists movements touching one product.
func (s *movementService) ListByProduct(ctx context.Context, productID string, page dto.PageParams) (*domain.MovementPage, error) {
	if err := uuid.Validate(productID); err != nil {
		return nil, apperrors.NewValidation("productID", "product ID must be a valid UUID")
	}
	pred := filter.Build(filter.WithProductID(productID))
	return s.movementRepo.SearchMovements(ctx, pred, pagination.Normalize(page.Page, page.Limit))
}

// ListByUser lists movements recorded by one user.
func (s *movementService) ListByUser(ctx context.Context, userID string, page dto.PageParams) (*domain.MovementPage, error) {
	if err := uuid.Validate(userID); err != nil {
		return nil, apperrors.NewValidation("userID", "user ID must be a valid UUID")
	}
	pred := filter.Build(filter.WithUserID(userID))
	return s.movementRepo.SearchMovements(ctx, pred, pagination.Normalize(page.Page, page.Limit))
}

// AdvancedSearch folds the loose criteria into one predicate. Invalid
// criteria are dropped rather than rejected, so the search always runs.
func (s *movementService) AdvancedSearch(ctx context.Context, req dto.SearchMovementsRequest) (*domain.MovementPage, error) {
	pred := filter.Build(
		filter.WithType(req.Type),
		filter.WithDestination(req.Destination),
		filter.WithDateExact(req.ExactDate),
		filter.WithDateOnAfter(req.StartDate),
		filter.WithDateOnBefore(req.EndDate),
		filter.WithUserID(req.UserID),
		filter.WithUserName(req.UserName),
		filter.WithProductID(req.ProductID),
		filter.WithProductName(req.ProductName),
		filter.WithProductCode(req.ProductCode),
		filter.WithSupplierID(req.SupplierID),
		filter.WithSupplierName(req.SupplierName),
		filter.WithQuantityMin(req.QuantityMin),
		filter.WithQuantityMax(req.QuantityMax),
	)
	return s.movementRepo.SearchMovements(ctx, pred, pagination.Normalize(req.Page, req.Limit))
}

// parseLooseDate accepts RFC3339 timestamps or bare calendar dates.
func parseLooseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
