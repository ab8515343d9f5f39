package toggle_boarding_date

// Request запрос на переключение даты передержки
type Request struct {
	SitterID int64
	UserID   int64
	Date     string
}

// Response результат переключения даты передержки
type Response struct {
	Date     string `json:"date"`
	Selected bool   `json:"selected"`
}
