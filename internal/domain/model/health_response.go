package model

type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus is the health of one backing service.
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// ComponentUp reports a reachable component. details may be nil.
func ComponentUp(details map[string]string) ComponentHealthStatus {
	return component(StatusUp, string(StatusUp), details)
}

// ComponentDown reports an unreachable component with err as its message.
func ComponentDown(err error, details map[string]string) ComponentHealthStatus {
	return component(StatusDown, err.Error(), details)
}

// ComponentDisabled reports a component that is switched off by configuration.
func ComponentDisabled(reason string) ComponentHealthStatus {
	return component(StatusUnknown, reason, nil)
}

func component(status HealthStatus, message string, details map[string]string) ComponentHealthStatus {
	merged := make(map[string]string, len(details)+1)
	for key, value := range details {
		merged[key] = value
	}
	merged["message"] = message
	return ComponentHealthStatus{Status: status, Details: merged}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   HealthStatus          `json:"status"`
	Database ComponentHealthStatus `json:"database"`
	Cache    ComponentHealthStatus `json:"cache"`
}

// NewHealthResponse is DOWN as soon as one component is DOWN. UNKNOWN
// components (a disabled cache) do not count against the service.
func NewHealthResponse(database, cache ComponentHealthStatus) HealthResponse {
	status := StatusUp
	if database.Status == StatusDown || cache.Status == StatusDown {
		status = StatusDown
	}
	return HealthResponse{Status: status, Database: database, Cache: cache}
}

func (response HealthResponse) IsDown() bool {
	return response.Status == StatusDown
}
