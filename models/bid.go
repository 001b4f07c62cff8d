package models

import "time"

// Bid is an offer placed on a product. Bids are never updated.
type Bid struct {
	// ID is the system-generated identifier, rendered as "_id".
	ID string `validate:"omitempty,uuid"`

	// Product references Product.ID. It is not checked against the catalog.
	Product string

	BuyerEmail string  `validate:"omitempty,email"`
	BidPrice   *Amount `validate:"omitempty,gte=0"`

	CreatedAt time.Time

	// Attributes holds arbitrary bid fields (buyer name, contact, status...).
	Attributes Attributes
}

func (b Bid) TableName() string {
	return "bids"
}

func (b Bid) MarshalJSON() ([]byte, error) {
	known := map[string]any{}
	if b.Product != "" {
		known["product"] = b.Product
	}
	if b.BuyerEmail != "" {
		known["buyer_email"] = b.BuyerEmail
	}
	if b.BidPrice != nil {
		known["bid_price"] = float64(*b.BidPrice)
	}
	if b.ID != "" {
		known["_id"] = b.ID
	}
	if !b.CreatedAt.IsZero() {
		known["created_at"] = b.CreatedAt
	}
	return encodeDocument(b.Attributes, known)
}

func (b *Bid) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}

	doc.drop("_id", "id")
	doc.takeString(&b.Product, "product")
	doc.takeString(&b.BuyerEmail, "buyer_email")
	doc.takeAmount(&b.BidPrice, "bid_price")
	doc.takeTime(&b.CreatedAt, "created_at")

	b.Attributes, err = doc.rest()
	return err
}

// BidFilter narrows a bid listing.
type BidFilter struct {
	// BuyerEmail, when non-empty, keeps only bids placed by this email.
	BuyerEmail string

	// Product, when non-empty, keeps only bids on this product. Results are
	// then ordered by bid price, highest first.
	Product string
}
