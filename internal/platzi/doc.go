// Package platzi provides an HTTP client for the Platzi fake-store catalog API.
//
// # Overview
//
// The client wraps the three product endpoints shelf uses:
//
//   - GET  /products       list every product
//   - PUT  /products/{id}  partial update of title, price and description
//   - POST /products/      create a product (201 on success)
//
// Paths are resolved against a configurable base URL, which defaults to
// https://api.escuelajs.co/api/v1.
//
// # Errors
//
// Every failure is a *NetworkError. Callers distinguish the two failure kinds
// with IsStatus:
//
//   - StatusCode > 0: the server answered with a non-2xx status
//   - StatusCode == 0: the request never completed, timed out, or the body
//     could not be decoded
//
// # Timeouts
//
// Requests are bounded by http.Client.Timeout (DefaultTimeout unless
// WithTimeout is given) in addition to any deadline on the caller's context.
//
// # Headers
//
// Each request carries Accept: application/json, a shelf User-Agent and a
// fresh X-Request-ID. Requests with a body also set Content-Type.
package platzi
