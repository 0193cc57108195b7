package schedule

import (
	"fmt"

	"github.com/okian/rota/internal/domain/model"
)

// Sentinel errors for this package.
var (
	ErrEmptyRoster = fmt.Errorf("%w: roster is empty", model.ErrConfiguration)
)
