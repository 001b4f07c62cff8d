package store

import "github.com/MKhiriev/go-smart-deals/internal/logger"

// Storages groups the repositories handed to the service layer.
type Storages struct {
	UserRepository    UserRepository
	ProductRepository ProductRepository
	BidRepository     BidRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ProductRepository: NewProductRepository(db, logger),
		BidRepository:     NewBidRepository(db, logger),
	}
}
