// Package app provides the application service layer.
//
// Orchestrates use cases: the sentiment pipeline (resolve regions, aggregate,
// cache report) and the similarity analysis (sample records, build graphs,
// invoke the kernel, cluster one row). Sits between HTTP handlers and domain
// interfaces. Depends on domain interfaces, not concrete implementations.
package app
