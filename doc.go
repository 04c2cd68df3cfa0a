// Package crm provides the client-side session and authorization core for the
// HR/CRM admin shell: an HTTP client wrapper for the remote REST backend, a
// server-rehydrated session store, and a route guard with role-aware
// redirects.
//
// Authentication channels:
//   - The backend manages a session cookie; Client carries a cookie jar so the
//     cookie rides along with every request automatically.
//   - Login may also return a bearer token. When present it is persisted in a
//     TokenStore and attached as an Authorization header on every request. The
//     token supplements the cookie, it never replaces it, and token presence
//     alone is never treated as proof of authentication; the identity
//     endpoint response is authoritative.
//
// Session lifecycle:
//   - SessionStore boots with loading=true, rehydrates the user by calling the
//     identity endpoint once, and drops loading exactly once regardless of the
//     outcome. Login re-runs the identity fetch before resolving so callers
//     always observe server-confirmed state. Logout clears token and user
//     unconditionally and is idempotent.
//
// Route guarding:
//   - Guard evaluates a strict precedence chain per navigation: loading wins
//     over unauthenticated, which wins over a forced password change, which
//     wins over a role mismatch. Role mismatches redirect to the role's
//     landing page rather than surfacing an error.
package crm
