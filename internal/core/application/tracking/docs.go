// Package tracking keeps a live view of an order in delivery.
//
// A View joins the order's realtime room and folds location and status
// updates into a snapshot the caller reads at its own pace. The view
// degrades gracefully: if the connection drops it re-fetches the order
// once instead of presenting a silently stale picture.
package tracking
