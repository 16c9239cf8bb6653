/*
Package observability turns notifier hooks into Prometheus metrics and
structured log lines.

Both helpers return a domain.Hooks value; combine them with domain.Combine
and pass the result to the notifier.
*/
package observability
