package dto

// Health status values.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of the liveness and readiness endpoints. Checks
// maps each registered checker name to "ok" or its error text.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToHealthResponse builds a readiness body from checker results and reports
// whether every check passed.
func ToHealthResponse(results map[string]error) (HealthResponse, bool) {
	checks := make(map[string]string, len(results))
	healthy := true
	for name, err := range results {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = HealthOK
	}

	status := HealthReady
	if !healthy {
		status = HealthNotReady
	}
	return HealthResponse{Status: status, Checks: checks}, healthy
}
