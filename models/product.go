package models

import "time"

// LatestProductsLimit is the number of products returned by the
// latest-products listing.
const LatestProductsLimit = 6

// Product is a listing created by its owner. Only Name and Price are mutable.
type Product struct {
	// ID is the system-generated identifier, rendered as "_id".
	ID string `validate:"omitempty,uuid"`

	// Email is the owner's email. "owner" is accepted as an input alias.
	Email string `validate:"omitempty,email"`

	Name string

	// Price is nil when the listing was created without one.
	Price *Amount `validate:"omitempty,gte=0"`

	// CreatedAt orders listings. Taken from the client when it is a valid
	// RFC 3339 timestamp, otherwise assigned by the service and the client
	// value is kept in Attributes.
	CreatedAt time.Time

	// Attributes holds arbitrary listing fields (image, category, condition...).
	Attributes Attributes
}

func (p Product) TableName() string {
	return "products"
}

func (p Product) MarshalJSON() ([]byte, error) {
	known := map[string]any{}
	if p.Email != "" {
		known["email"] = p.Email
	}
	if p.Name != "" {
		known["name"] = p.Name
	}
	if p.Price != nil {
		known["price"] = float64(*p.Price)
	}
	if p.ID != "" {
		known["_id"] = p.ID
	}
	if !p.CreatedAt.IsZero() {
		known["created_at"] = p.CreatedAt
	}
	return encodeDocument(p.Attributes, known)
}

func (p *Product) UnmarshalJSON(b []byte) error {
	doc, err := decodeDocument(b)
	if err != nil {
		return err
	}

	doc.drop("_id", "id")
	doc.takeString(&p.Email, "email", "owner")
	doc.takeString(&p.Name, "name")
	doc.takeAmount(&p.Price, "price")
	doc.takeTime(&p.CreatedAt, "created_at")

	p.Attributes, err = doc.rest()
	return err
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	// Email, when non-empty, keeps only products owned by this email.
	Email string

	// Limit, when positive, caps the number of returned products.
	Limit uint64
}

// ProductUpdate carries the only two mutable product fields. Nil means
// "leave unchanged"; any other field of the request body is ignored.
type ProductUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Price *Amount `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update changes nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil
}
