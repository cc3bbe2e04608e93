package usecase

import "errors"

// ErrNoSymbols indicates that a quotes request contained no usable symbols
// after normalization. It is the one caller-input check performed before the
// cache is touched and maps to a 400 at the transport layer.
var ErrNoSymbols = errors.New("no symbols provided")
