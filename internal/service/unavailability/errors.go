package unavailability

import "errors"

var (
	// ErrSitterNotFound возвращается, когда ситтер не найден
	ErrSitterNotFound = errors.New("sitter not found")

	// ErrAccessDenied возвращается, когда пользователь редактирует чужой календарь
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
