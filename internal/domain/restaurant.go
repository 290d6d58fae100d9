package domain

type Restaurant struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
}
