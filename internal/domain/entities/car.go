package entities

// Car is the catalog projection the booking core reads. The catalog
// service owns the record; the core never writes it.
//
// Storage model (DynamoDB):
//   - PK: id
type Car struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	PricePerDay float64 `json:"price_per_day"`
	IsAvailable bool    `json:"is_available"`
}

// Description renders the human-readable car line used on receipts.
func (c Car) Description() string {
	out := c.Brand
	if c.Model != "" {
		if out != "" {
			out += " "
		}
		out += c.Model
	}
	if c.Name != "" {
		if out != "" {
			out += " (" + c.Name + ")"
		} else {
			out = c.Name
		}
	}
	return out
}
