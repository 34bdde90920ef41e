// Package auth is the decision core of an authentication and authorization
// gateway: it verifies identities over two independent trust paths and issues
// the compact signed session token that downstream requests present.
//
// Trust paths:
//   - Credentials: UserProvider validates the email/password shape, fetches
//     the user record by email, and runs a constant-time bcrypt comparison.
//     Not-found and mismatch are indistinguishable to callers.
//   - OAuth: a social.SocialProvider exchanges an authorization code for a
//     profile assertion; NewIdentityFromProfile normalizes it without any
//     local password check. OAuth sign-ins never require a pre-existing
//     user record.
//
// Sessions are token based. TokenService signs a minimal claim set (the user
// id plus standard expiry metadata) and SessionFromToken / HydrateSession
// rebuild the per-request SessionObject from it. No server-side session
// table exists.
//
// Route policy:
//   - Gate computes a per-request AuthDecision (allow, redirect to the
//     sign-in page, or redirect to the application landing page) from the
//     session state and the requested path. RouteAuthenticator wires the
//     gate and the cookie token store into router middleware.
//
// Everything is dependency injected: the bun.DB, the token service, and the
// providers are constructed explicitly at start-up and passed in; the
// package keeps no process-wide state.
package auth
