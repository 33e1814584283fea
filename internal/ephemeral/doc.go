// Package ephemeral holds short-lived keyed values that do not belong in
// the relational store: one-time codes and fixed-window rate-limit
// counters.
//
// Every store comes in two variants. The memory variants are process-local
// maps guarded by a mutex and need a periodic Sweep to drop abandoned
// entries. The Redis variants rely on key TTLs, so their Sweep is a no-op,
// and they can be shared by several server replicas.
package ephemeral
