/*
Package client is the Go SDK for the portal-auth session endpoints.

A Client owns a cookie jar holding the two session cookies, a cached
AuthState describing who is logged in, and a refresh coordinator. Requests
made through the client that fail with AUTHENTICATION_REQUIRED are
transparently retried after a refresh call, and no matter how many requests
fail at once, at most one refresh HTTP call is ever in flight: concurrent
callers share the outcome of the one call. When the refresh itself fails the
cached state is cleared and every waiter gets ErrSessionExpired, leaving the
application one move: send the user back to login.

Requests to the authentication endpoints themselves (login, register,
refresh, logout) are never intercepted, so a failing refresh can never
recursively trigger another refresh.
*/
package client
