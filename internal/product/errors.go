package product

import (
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
)

var (
	ErrProductNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)
	ErrSKUExists       = fmt.Errorf("sku %w", apperr.ErrConflict)
)
