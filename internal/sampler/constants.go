package sampler

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Report formatting constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)
