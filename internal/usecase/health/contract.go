package health

import "context"

// SelfChecker runs known-answer computations and reports wrong results.
type SelfChecker interface {
	SelfCheck(ctx context.Context) error
}
