package services

import (
	"time"

	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
)

// NewContainer wires all services with their dependencies. The product
// service doubles as the stock adapter consumed by the movement service.
func NewContainer(repos *portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	productSvc := NewProductService(repos.ProductRepo, repos.SupplierRepo)

	return &portssvc.ServiceContainer{
		Movement: NewMovementService(repos.MovementRepo, productSvc),
		Stock:    productSvc,
		Product:  productSvc,
		Supplier: NewSupplierService(repos.SupplierRepo),
		User:     NewUserService(repos.UserRepo),
		Token:    NewTokenService(jwtSecret, jwtExpiry, jwtIssuer),
	}
}
