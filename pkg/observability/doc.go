/*
Package observability turns engine and dispatcher lifecycle hooks into Prometheus metrics.

Metrics are registered on a caller-supplied registerer so tests and embedders can
keep them isolated from the default registry.
*/
package observability
