// Package provider abstracts the model backend behind a single
// Complete call.
//
// Two implementations ship with memoflow:
//
//   - OpenAI: the OpenAI chat completions API via the official client.
//     When a request carries an output schema, the call uses strict
//     JSON-schema response format and the response arrives decoded in
//     Response.Structured.
//   - Canned: scripted responses for tests and offline development.
//
// Backend failures surface as *Error wrapping the underlying cause, so
// callers can both log the provider name and unwrap API errors.
package provider
