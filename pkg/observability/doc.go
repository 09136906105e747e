/*
Package observability provides tools for monitoring the Parley runner.

It includes Prometheus counters fed by lifecycle hooks, an audit logger built on
the same hooks, and Combine to attach several hook sets to one runner.
*/
package observability
