package accountservice

// Sitter модель профиля ситтера из AccountService
type Sitter struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Rating      float64 `json:"rating"`
	IsActive    bool    `json:"is_active"`
	OffersWalks bool    `json:"offers_walks"`
}

// ErrorResponse модель ошибки от AccountService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
