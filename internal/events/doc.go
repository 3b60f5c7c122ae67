// Package events carries in-process progress notifications.
//
// Track services emit a ProgressEvent when something noteworthy happens to
// a learner's progress: a day advanced, an equations category rotated, a
// book was finished, or a no-repeat corpus ran dry. Handlers registered on
// an InMemoryEventEmitter receive every event synchronously.
package events
