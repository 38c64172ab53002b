// Package notification models the per-recipient messages produced by the
// order fanout. Notifications are created once and afterwards only change
// their read state.
package notification
