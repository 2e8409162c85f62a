package cacherepository

import (
	"errors"

	"github.com/karupanerura/cache-repository/expiration"
)

var (
	ErrNilRegistry   = errors.New("store registry must not be nil")
	ErrUnknownPolicy = expiration.ErrUnknownPolicy
	ErrEncode        = errors.New("unable to encode value for cache store")
)
