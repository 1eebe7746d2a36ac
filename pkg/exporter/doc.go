// Package exporter walks a figure object tree and drives a renderer.
//
// The exporter is the bridge between the imperative figure model and any
// declarative output format: it owns the traversal order and the derivation
// of per-artist properties, while renderers own the accumulation of output.
// This split means a renderer never touches the figure tree directly and a
// new output format is a single [Renderer] implementation away.
//
// # Traversal order
//
// For each figure:
//
//	OpenFigure
//	  for each axes (in declaration order):
//	    OpenAxes
//	      DrawLine / DrawMarkers    (one or both per line artist)
//	      DrawPath                  (per path artist)
//	      DrawPathCollection        (per collection artist)
//	      DrawImage                 (per image artist)
//	      DrawText                  (per text artist, labels and title included)
//	    CloseAxes
//	CloseFigure
//
// A line artist with both a stroke style and a marker style produces a
// DrawLine event followed by a DrawMarkers event with the same data, the
// way matplotlib separates the two draw passes.
//
// Renderers report failure by returning an error; the exporter stops at the
// first error and wraps it with the position in the tree.
package exporter
