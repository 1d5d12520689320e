package entities

// User is the renter projection read for receipt rendering. Identity
// and profile management live outside this service.
//
// Storage model (DynamoDB):
//   - PK: id
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
