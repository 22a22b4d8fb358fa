// Package flows contains the per-operation orchestration for the session
// machine: login, register, logout, rehydrate and local user update.
//
// Each flow is a RunX function taking an explicit XDeps struct so the logic
// can be exercised in isolation. Flows call the network collaborator and the
// session cache; they never touch machine state — the root package applies
// flow results to its snapshot.
package flows
