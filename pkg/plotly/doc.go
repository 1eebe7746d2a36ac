// Package plotly models the plotly figure document: a list of trace
// objects plus a layout object, all JSON-shaped maps.
//
// Plotly's grammar is open-ended, so the package does not mirror it with
// structs. Instead every node is an [Object] (a map) tagged with a [Kind],
// and a per-kind schema drives the recursive operations:
//
//   - [Object.Clean] removes nil values,
//   - [Object.Strip] removes style keys, keeping only the safe subset,
//   - [Object.Validate] rejects keys outside the kind's vocabulary,
//   - [Object.Repair] fixes known key and value spellings (for example
//     the "xaxis1" form of the first axis is normalized to "xaxis").
//
// [Figure] bundles data and layout and applies the operations to both.
package plotly
