package models

// InsertResult acknowledges a stored document.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult reports how many documents matched and changed.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents were removed.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// MessageResponse is the body of no-op acknowledgements and error replies.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by the token issuing endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateUserResponse is the body of the user creation endpoint as seen by a
// client: an insert acknowledgement for a new user or a message for an
// existing one.
type CreateUserResponse struct {
	Acknowledged bool   `json:"acknowledged,omitempty"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}
