// Package routine schedules the day-based tracks: numbers/subitizing and
// equations. Both share Scheduler, which loads a ProgressState, derives the
// day's content from a curriculum.Scheme and keeps the completion ledger.
package routine
