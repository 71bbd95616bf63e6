package category

import (
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
)

var ErrCategoryExists = fmt.Errorf("category %w", apperr.ErrConflict)
