// Package clock provides the time source used by every scheduler. Day rollover,
// ledger staleness and "completed today" checks all compare local calendar days,
// so the clock carries the location those days are evaluated in.
package clock
