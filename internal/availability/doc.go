// Package availability reconciles respondents' availability intervals with an
// event's day/time grid.
//
// Stored intervals are UTC instants. A Grid lays them out in one timezone as
// grid days (columns) by 15-minute slots (rows), converts interval sets into a
// per-cell SlotMap and back, aggregates many respondents into overlap blocks,
// and drives rectangular drag edits through an Editor. Every function here is
// synchronous and free of I/O; only Editor carries state between calls.
package availability
