package reminder

import "errors"

var (
	ErrDispatchRejected = errors.New("reminder rejected by notification service")
	ErrDispatchFailed   = errors.New("reminder could not be submitted")
)
