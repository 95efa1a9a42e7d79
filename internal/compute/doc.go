// Package compute executes the engine's grid passes.
//
// Every simulation update is expressed as a named full-grid pass: a kernel
// evaluated once per output cell, reading from the previous buffers and
// writing a fresh target grid. The backend decides scheduling only; pass
// semantics live in the kernels.
//
//	backend := compute.AutoSelectBackend()
//	backend.RunPass("swe.integrate", dst, kernel)
//
// The CPU backend chunks rows across workers for large grids and runs
// serially below that threshold.
package compute
