// Package sub provides ready-made subscriptions for common
// long-running message sources: periodic timers and websocket feeds.
//
// Each type implements runtime.Subscription and is declared from a
// model's Subscriptions method; the runtime starts and stops them as
// the declared set changes. The ID is the identity: returning an
// Interval with the same ID across updates keeps one timer running,
// changing the ID replaces it.
package sub
