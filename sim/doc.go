// Package sim provides the core engine for the campus bike-parking simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - campus.go: the spatial entity model (Campus/Locale/RackPad) and nearest-pad search
//   - schedule.go: occupancy-weighted itinerary generation and biker creation
//   - simulator.go: the per-step placement loop and distance accounting
//
// # Architecture
//
// The sim package owns the mutable simulation state; downstream analysis lives
// in sub-packages:
//   - sim/report/: reduction of step records and cycle snapshots into per-locale statistics
//   - sim/layout/: the rebuilt optimizer topology and greedy rack rebalancing passes
//
// A cycle is one Simulator run followed by one layout optimization; the
// optimizer reserializes its topology into the same CompiledDataset shape the
// next cycle consumes. Everything is single-threaded and deterministic for a
// fixed seed (see rng.go).
package sim
