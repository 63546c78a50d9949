// Package notifications sends push notifications for long-running analysis
// and export outcomes via ntfy. When no topic is configured the service is a
// noop, so callers never need to branch on notification availability.
package notifications
