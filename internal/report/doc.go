// Package report renders a capacity.Result for the console.
//
// Formats:
//   - table: the five-line "Data Center Configuration" block
//   - detailed: the block plus occurrence and per-machine-id tables
//   - json: the full result as one JSON document
//   - prometheus: text exposition (client_model families encoded by expfmt)
//
// Write dispatches on Format. Every renderer iterates keys in sorted order,
// so output is stable across runs.
package report
