package epochsync

import "errors"

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrHandleReleased = errors.New("handle has been released")
	ErrFutureVersion  = errors.New("await target is ahead of the current epoch")
)
