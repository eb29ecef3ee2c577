// Package ports declares the seams of the todos service. Handlers depend on
// TodoService, the service depends on TodoStore, and readiness depends on
// HealthChecker and HealthRegistry. Mocks for each live in /mocks.
package ports
