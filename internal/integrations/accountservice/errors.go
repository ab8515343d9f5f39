package accountservice

import "errors"

var (
	// ErrSitterNotFound возвращается, когда ситтер не найден в AccountService
	ErrSitterNotFound = errors.New("sitter not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accountservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что AccountService недоступен и проверку профиля следует пропустить
	ErrServiceDegraded = errors.New("accountservice unavailable: graceful degradation applied")
)
