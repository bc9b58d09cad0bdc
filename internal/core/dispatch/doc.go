// Package dispatch runs the single goroutine that owns the key-value store.
//
// Connection handlers never touch the store. They submit a Request carrying
// the parsed command and a reply channel to the Dispatcher's mailbox. The
// dispatcher executes requests one at a time in the order they were queued
// and sends each reply only to the channel that came with its request. All
// store mutations are therefore totally ordered and need no locking.
//
// Closing the dispatcher stops new submissions; requests already queued are
// still executed before Run returns.
package dispatch
