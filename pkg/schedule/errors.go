package schedule

import (
	"fmt"

	"inferoute/pkg/dispatch"
)

// UnroutableRequestError reports a request no endpoint can ever admit.
// It is permanent: waiting for refill cannot help, so the run fails fast
// instead of looping forever.
type UnroutableRequestError struct {
	Request      dispatch.Request
	MaxTokenRate float64
}

func (e *UnroutableRequestError) Error() string {
	return fmt.Sprintf("request %s with token cost %d exceeds every endpoint's token ceiling (max %v/sec)",
		e.Request.ID, e.Request.TokenCost, e.MaxTokenRate)
}
