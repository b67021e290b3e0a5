// Package runtime is the control loop of the framework: it turns a
// model's pure update and view functions into a live terminal
// program.
//
// # Architecture
//
// Application state lives in a Model and is opaque to the runtime.
// State changes happen only inside Update, which receives messages
// and returns commands. Commands are plain values describing deferred
// effects (quit, send a message, arm a tick, log a line, run a
// closure on a worker goroutine); the runtime interprets them, so
// application code never performs side effects directly.
//
// One goroutine, the loop, owns the model. Terminal input,
// subscription messages and background task results all merge into
// that goroutine before any of them touch state. Worker goroutines
// exist only for the lifetime of a single Task and communicate
// exclusively through the shared result channel.
//
// # The loop
//
// Each iteration polls the terminal session (the loop's only
// suspension point, bounded by the next tick and any pending resize
// apply), drains buffered terminal events, subscription messages and
// task results in that order, advances the resize debouncer, and
// renders at most one frame if anything marked the UI dirty. The
// frame budget may skip the visual refresh entirely under load;
// state still advances.
//
// Resize events never reach Update directly. They are coalesced by a
// trailing-edge debouncer, with a lightweight placeholder frame shown
// while a drag-resize is in flight, and only the settled size is
// dispatched as a message.
//
// # Testing applications
//
// Simulator drives a model synchronously without a terminal:
// commands, including tasks, execute inline, and frames can be
// captured headlessly. The runtime's own determinism tests are built
// on it.
package runtime
