package inventory

import (
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
)

var (
	ErrOutOfStock  = fmt.Errorf("item is out of stock: %w", apperr.ErrPrecondition)
	ErrUnknownPair = fmt.Errorf("item or supplier %w", apperr.ErrNotFound)
	ErrNotSupplied = fmt.Errorf("supplier item %w", apperr.ErrNotFound)
)
