package supplier

import (
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
)

var (
	ErrSupplierNotFound = fmt.Errorf("supplier %w", apperr.ErrNotFound)
	ErrCodeExists       = fmt.Errorf("supplier code %w", apperr.ErrConflict)
)
