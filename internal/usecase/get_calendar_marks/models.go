package get_calendar_marks

// Request запрос на построение разметки календаря
type Request struct {
	SitterID int64
	From     string
	To       string
}

// Mark разметка одной даты для календарного виджета
type Mark struct {
	Selected bool   `json:"selected"`
	Color    string `json:"color"`
	Kind     string `json:"kind"`
}

// Response разметка календаря по датам диапазона
type Response struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Marks map[string]Mark `json:"marks"`
}
