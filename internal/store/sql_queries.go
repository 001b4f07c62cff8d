package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-smart-deals/models"
)

const (
	createUser = `INSERT INTO users (id, email, attributes, created_at)
    VALUES ($1, $2, $3, $4)
    RETURNING id, email, attributes, created_at;`

	selectProductNameAndPriceForUpdate = `SELECT name, price
    FROM products
    WHERE id = $1
    FOR UPDATE;`
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	productColumns = []string{"id", "email", "name", "price", "attributes", "created_at"}
	bidColumns     = []string{"id", "product", "buyer_email", "bid_price", "attributes", "created_at"}
)

// nullableAmount maps a missing price to SQL NULL.
func nullableAmount(amount *models.Amount) any {
	if amount == nil {
		return nil
	}
	return float64(*amount)
}

// amountFromNull is the inverse of nullableAmount for scanned columns.
func amountFromNull(n sql.NullFloat64) *models.Amount {
	if !n.Valid {
		return nil
	}
	return models.NewAmount(n.Float64)
}

func buildInsertProductQuery(product models.Product) (string, []any, error) {
	query, args, err := psql.
		Insert(product.TableName()).
		Columns(productColumns...).
		Values(product.ID, product.Email, product.Name, nullableAmount(product.Price), product.Attributes, product.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectProductsQuery(filter models.ProductFilter) (string, []any, error) {
	builder := psql.
		Select(productColumns...).
		From(models.Product{}.TableName()).
		OrderBy("created_at DESC", "id DESC")

	if filter.Email != "" {
		builder = builder.Where(sq.Eq{"email": filter.Email})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectProductByIDQuery(id string) (string, []any, error) {
	query, args, err := psql.
		Select(productColumns...).
		From(models.Product{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateProductQuery sets only the fields present in update.
func buildUpdateProductQuery(id string, update models.ProductUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	builder := psql.Update(models.Product{}.TableName())
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Price != nil {
		builder = builder.Set("price", float64(*update.Price))
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertBidQuery(bid models.Bid) (string, []any, error) {
	query, args, err := psql.
		Insert(bid.TableName()).
		Columns(bidColumns...).
		Values(bid.ID, bid.Product, bid.BuyerEmail, nullableAmount(bid.BidPrice), bid.Attributes, bid.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectBidsQuery orders a product's bids by price, highest first, and
// every other listing by placement time.
func buildSelectBidsQuery(filter models.BidFilter) (string, []any, error) {
	builder := psql.
		Select(bidColumns...).
		From(models.Bid{}.TableName())

	if filter.BuyerEmail != "" {
		builder = builder.Where(sq.Eq{"buyer_email": filter.BuyerEmail})
	}
	if filter.Product != "" {
		builder = builder.Where(sq.Eq{"product": filter.Product}).
			OrderBy("bid_price DESC NULLS LAST", "created_at ASC")
	} else {
		builder = builder.OrderBy("created_at ASC", "id ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildDeleteByIDQuery(table, id string) (string, []any, error) {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
