package toggle_boarding_date

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь переключает чужие даты
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках use case
	ErrInternal = errors.New("usecase: internal error")
)
