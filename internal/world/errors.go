package world

import "errors"

var (
	// ErrOutOfRange возвращается, если координата или индекс лежит за объявленными границами
	ErrOutOfRange = errors.New("координата вне допустимого диапазона")

	// ErrInvalidMetrics возвращается при неположительных размерах чанка, суперчанка или мира
	ErrInvalidMetrics = errors.New("некорректные размеры мира")

	// ErrInvalidStateSize возвращается, если размер состояния вокселя не положителен
	ErrInvalidStateSize = errors.New("некорректный размер состояния вокселя")

	// ErrStateSize возвращается, если длина переданного состояния не совпадает с размером мира
	ErrStateSize = errors.New("длина состояния вокселя не совпадает с размером мира")
)
