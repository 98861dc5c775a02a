//go:build arm

package platform

import "golang.org/x/sys/cpu"

// LDREXD/STREXD ship with every core that reports LPAE. Older cores go
// through the kernel helper.
var hasWideCAS = cpu.ARM.HasLPAE
