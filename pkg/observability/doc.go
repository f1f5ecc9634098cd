/*
Package observability provides tools for monitoring the navigator.

Metrics translate the lifecycle hooks of a navigator into Prometheus collectors
(queries by kind and outcome, query latency, models pulled from solver streams and
session rebuilds) held on a private registry, so several navigators can be observed
side by side. The collected values can be scraped or dumped in the text exposition
format at the end of a command.
*/
package observability
