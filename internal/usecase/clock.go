package usecase

import (
	"time"

	"tendorai/internal/usecase/interfaces"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the production time source (UTC).
func SystemClock() interfaces.Clock { return systemClock{} }
