// Package pipeline runs inputs through the analysis steps.
//
// A Pipeline executes Steps in order over a Scan: the analysis step produces
// the verdict, and the history step records it. Each step sees the Scan left
// by the previous one.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It lets a failing history store be logged without losing the verdict
//
// BatchProcessor runs a Pipeline over many inputs with bounded concurrency
// using errgroup, keeping results in input order.
package pipeline
