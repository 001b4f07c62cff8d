package service

import (
	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/validators"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	ProductService ProductService
	BidService     BidService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, identityProvider adapter.IdentityProvider, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewDocumentValidator()

	return &Services{
		AuthService:    NewAuthService(identityProvider, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, validator, logger),
		ProductService: NewProductService(storages.ProductRepository, validator, logger),
		BidService:     NewBidService(storages.BidRepository, validator, logger),
		AppInfoService: appInfoService,
	}, nil
}
