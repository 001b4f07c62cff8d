package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/models"
)

type bidRepository struct {
	*DB
	logger *logger.Logger
}

func NewBidRepository(db *DB, logger *logger.Logger) BidRepository {
	logger.Debug().Msg("creating bid repository")
	return &bidRepository{
		DB:     db,
		logger: logger,
	}
}

func (b *bidRepository) CreateBid(ctx context.Context, bid models.Bid) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertBidQuery(bid)
	if err != nil {
		log.Err(err).Str("func", "bidRepository.CreateBid").Msg("failed to create query")
		return err
	}

	result, err := b.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "bidRepository.CreateBid").
			Str("bid_id", bid.ID).
			Str("product", bid.Product).
			Msg("failed to insert bid")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return ErrDocumentNotSaved
	}

	return nil
}

func (b *bidRepository) ListBids(ctx context.Context, filter models.BidFilter) ([]models.Bid, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectBidsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "bidRepository.ListBids").Msg("failed to create query")
		return nil, err
	}

	var bids []models.Bid
	err = b.withRetry(ctx, func() error {
		var queryErr error
		bids, queryErr = b.queryBids(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "bidRepository.ListBids").
			Str("buyer_email", filter.BuyerEmail).
			Str("product", filter.Product).
			Msg("failed to list bids")
		return nil, err
	}

	return bids, nil
}

func (b *bidRepository) queryBids(ctx context.Context, query string, args ...any) ([]models.Bid, error) {
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bids := make([]models.Bid, 0)
	for rows.Next() {
		var bid models.Bid
		var bidPrice sql.NullFloat64
		scanErr := rows.Scan(
			&bid.ID,
			&bid.Product,
			&bid.BuyerEmail,
			&bidPrice,
			&bid.Attributes,
			&bid.CreatedAt,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		bid.BidPrice = amountFromNull(bidPrice)
		bids = append(bids, bid)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bids, nil
}

func (b *bidRepository) DeleteBid(ctx context.Context, id string) (models.DeleteResult, error) {
	deleted, err := deleteByID(ctx, b.DB, models.Bid{}.TableName(), id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "bidRepository.DeleteBid").
			Str("bid_id", id).
			Msg("failed to delete bid")
		return models.DeleteResult{}, err
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
