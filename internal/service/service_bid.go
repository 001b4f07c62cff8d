package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/internal/validators"
	"github.com/MKhiriev/go-smart-deals/models"
)

type bidService struct {
	bidRepository store.BidRepository
	validator     validators.Validator
	ids           *utils.UUIDGenerator
	now           func() time.Time

	logger *logger.Logger
}

func NewBidService(bidRepository store.BidRepository, validator validators.Validator, logger *logger.Logger) BidService {
	return &bidService{
		bidRepository: bidRepository,
		validator:     validator,
		ids:           utils.NewUUIDGenerator(),
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}
}

// CreateBid stores a bid as sent. Only the format of values that are present
// is checked. The product reference is free text and is not checked against
// the catalog.
func (b *bidService) CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	if err := b.validator.Validate(ctx, bid); err != nil {
		log.Err(err).Str("func", "*bidService.CreateBid").Msg("invalid bid provided")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	bid.ID = b.ids.Generate()
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = b.now()
	}

	if err := b.bidRepository.CreateBid(ctx, bid); err != nil {
		return models.InsertResult{}, fmt.Errorf("bid creation ended with error: %w", err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: bid.ID}, nil
}

func (b *bidService) ListBids(ctx context.Context, callerEmail, email string) ([]models.Bid, error) {
	if email != "" && email != callerEmail {
		logger.FromContext(ctx).Warn().
			Str("func", "*bidService.ListBids").
			Str("caller", callerEmail).
			Str("requested", email).
			Msg("attempt to list another buyer's bids")
		return nil, ErrForbidden
	}

	bids, err := b.bidRepository.ListBids(ctx, models.BidFilter{BuyerEmail: email})
	if err != nil {
		return nil, fmt.Errorf("error listing bids: %w", err)
	}

	return bids, nil
}

func (b *bidService) ListBidsForProduct(ctx context.Context, productID string) ([]models.Bid, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: empty product id", ErrInvalidIdentifier)
	}

	bids, err := b.bidRepository.ListBids(ctx, models.BidFilter{Product: productID})
	if err != nil {
		return nil, fmt.Errorf("error listing product bids: %w", err)
	}

	return bids, nil
}

func (b *bidService) DeleteBid(ctx context.Context, id string) (models.DeleteResult, error) {
	if !utils.IsValidID(id) {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	result, err := b.bidRepository.DeleteBid(ctx, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("error deleting bid: %w", err)
	}

	return result, nil
}
