package controller

import "errors"

var (
	ErrFetchSamples     = errors.New("fetch usage samples")
	ErrDecodeTier       = errors.New("decode current service objective")
	ErrScaleDatabase    = errors.New("scale database")
	ErrUnknownDirection = errors.New("unknown scaling direction")
	ErrInvalidSettings  = errors.New("invalid controller settings")
)
