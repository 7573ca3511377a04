// Package usecase holds the application services between the HTTP handlers
// and the storage layer. Each usecase owns validation and business rules for
// its slice of the domain and translates storage sentinels into AppErrors the
// response layer knows how to render.
package usecase

import (
	stderrors "errors"

	"farmstand/internal/domain/storage"
	"farmstand/pkg/errors"
)

// storeErr maps storage sentinels onto the HTTP-facing error taxonomy.
// resource names what was being looked up, for NotFound messages.
func storeErr(resource string, err error) error {
	switch {
	case stderrors.Is(err, storage.ErrNotFound):
		return errors.NotFound(resource, err)
	case stderrors.Is(err, storage.ErrConflict):
		return errors.Conflict(resource+" conflicts with existing data", err)
	default:
		return errors.Internal("Storage operation failed", err)
	}
}
