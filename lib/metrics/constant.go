package metrics

const (
	Namespace         = "announcer"
	ContractSubsystem = "contract"
	APISubsystem      = "api"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
