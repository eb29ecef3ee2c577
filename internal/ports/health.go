package ports

import "context"

// HealthChecker is one dependency GET /health/ready depends on: the todos
// store always, and the libSQL primary when running as an embedded replica.
type HealthChecker interface {
	// Name keys the checker's entry in the readiness body.
	Name() string

	// HealthCheck returns nil while the dependency can serve todos. It must
	// give up when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry is what the readiness handler consults.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every registered checker and maps its name to the result.
	CheckAll(ctx context.Context) map[string]error
}
