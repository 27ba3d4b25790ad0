package devicecontrol

import "errors"

var (
	// ErrConnectionFailed возвращается, когда соединение с брокером не установлено
	ErrConnectionFailed = errors.New("devicecontrol: connection failed")

	// ErrNotConnected возвращается при публикации без активного соединения
	ErrNotConnected = errors.New("devicecontrol: not connected to broker")

	// ErrPublishFailed возвращается, когда команда не доставлена брокеру
	ErrPublishFailed = errors.New("devicecontrol: publish failed")
)
