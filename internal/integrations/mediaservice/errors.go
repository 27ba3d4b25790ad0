package mediaservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден в каталоге
	ErrClientNotFound = errors.New("mediaservice: client not found")

	// ErrMediaNotFound возвращается, когда медиа не найдено в каталоге
	ErrMediaNotFound = errors.New("mediaservice: media not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("mediaservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mediaservice: internal error")
)
