// Package sessionkit provides a client-side authentication session machine
// with a validation contract, for front-of-house clients (kiosks, CLIs,
// embedded webviews) of an account-bearing backend.
//
// The package is the public surface. It exposes [Machine], [Builder],
// [Config], the error taxonomy ([RemoteError] plus sentinel vars), and value
// types ([User], [Snapshot], [Credentials]). Operation orchestration, audit
// dispatch, and metric storage live under internal/ and are never exported.
//
// # Architecture boundaries
//
//   - sessionkit/validate gates form payloads before they reach the machine;
//     the machine itself never validates field content.
//   - sessionkit/cache persists the single opaque session cache entry; the
//     machine is its only writer.
//   - sessionkit/remote implements the [AuthService] collaborator over HTTP;
//     the machine only sees the interface.
//
// # Session contract
//
// The machine owns the client's belief about who is signed in. The cached
// entry is a rehydration hint, never a source of truth: the collaborator's
// answer at startup overwrites or clears it. Logout always succeeds locally
// even when the remote call fails. Subscribers are notified synchronously
// with a consistent snapshot on every transition.
package sessionkit
