package interfaces

import "time"

// Clock is the injected time source. The engine never calls time.Now directly
// so validity windows and timestamps stay deterministic under test.

type Clock interface {
	Now() time.Time
}
