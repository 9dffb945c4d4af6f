package notifier

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события в брокер
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notifier: failed to encode event")
)
