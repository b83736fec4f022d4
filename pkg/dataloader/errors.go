package dataloader

import (
	"errors"
)

var (
	ErrRegistryNotFound     = errors.New("loader registry not found")
	ErrUnknownLoader        = errors.New("unknown loader")
	ErrUnknownDependency    = errors.New("dependency on unknown loader")
	ErrDuplicateLoader      = errors.New("loader is already registered")
	ErrCircularConstruction = errors.New("circular loader construction")
	ErrLoaderTypeMismatch   = errors.New("loader type mismatch")
	ErrFetchResultMismatch  = errors.New("fetch returned a result set not aligned with its keys")
	ErrFetchPanic           = errors.New("fetch panicked")
	ErrNotFound             = errors.New("entity not found")
)
