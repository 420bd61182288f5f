// Package sync orchestrates bookmark synchronization: it decodes the
// declared source store into the canonical model and regenerates the
// other stores with atomic writes. Concurrent runs against the same
// base directory are not coordinated; the last writer wins per target
// file. That race is the caller's responsibility.
package sync
