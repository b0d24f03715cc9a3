// Package metrics exposes Prometheus metrics for reconcile cycles.
//
// A Recorder counts objects added, removed and updated, counts cycles by outcome,
// tracks cycle duration and the number of live objects. Handler mounts the
// registry on a Fiber route (GET /metrics).
package metrics
