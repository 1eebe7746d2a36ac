// Package figure defines the serializable figure object model.
//
// A [Figure] is a hierarchical description of a plot: the figure holds sizing
// information and one or more [Axes]; each axes holds limits, scales, grid
// state, and the drawable artists attached to it (lines, paths, path
// collections, text, images). The model mirrors the shape of the matplotlib
// object tree closely enough that a figure serialized from a matplotlib
// front end maps onto it field for field.
//
// The model is intentionally passive: it carries no drawing logic. The
// exporter package walks a Figure and drives a renderer; this package only
// defines the data and its JSON form.
//
// # Coordinate frames
//
// Every positioned artist carries a coordinate frame identifier:
//
//   - "data": axes data coordinates (the usual case for plotted series)
//   - "axes": fractional axes coordinates in [0, 1]
//   - "figure": fractional figure coordinates in [0, 1]
//   - "display": absolute pixel coordinates
//
// Renderers decide which frames they support; the plotly renderer only
// converts data-coordinate series into traces, and maps text in other
// frames onto paper coordinates.
//
// # JSON format
//
// [ReadFile] and [Read] decode the JSON interchange format, [Write] encodes
// it. The format is stable and designed for round-trip fidelity so that
// figures can be produced by one tool and exported by another.
package figure
