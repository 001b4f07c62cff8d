package models

import "time"

// User is a marketplace participant. Email is the natural key; every other
// profile field sent by the client is kept in Attributes.
type User struct {
	// ID is the system-generated identifier, rendered as "_id".
	ID string `validate:"omitempty,uuid"`

	// Email is unique across all users.
	Email string `validate:"required,email"`

	// CreatedAt is set by the service when the user is first stored.
	CreatedAt time.Time

	// Attributes holds arbitrary profile fields (name, photo URL, ...).
	Attributes Attributes
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

func (u User) MarshalJSON() ([]byte, error) {
	known := map[string]any{
		"email": u.Email,
	}
	if u.ID != "" {
		known["_id"] = u.ID
	}
	if !u.CreatedAt.IsZero() {
		known["created_at"] = u.CreatedAt
	}
	return encodeDocument(u.Attributes, known)
}

// UnmarshalJSON decodes a user document. Client-supplied "_id" and
// "created_at" are discarded: both are assigned by the server.
func (u *User) UnmarshalJSON(b []byte) error {
	doc, err := decodeDocument(b)
	if err != nil {
		return err
	}

	doc.drop("_id", "id", "created_at")
	doc.takeString(&u.Email, "email")

	u.Attributes, err = doc.rest()
	return err
}
