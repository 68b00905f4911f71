// Package render draws library structure diagrams.
//
// A diagram shows the library as the root node with its classes,
// methods, and top-level functions beneath it. [ToDOT] produces
// Graphviz DOT text and [RenderSVG] rasterizes it through the embedded
// Graphviz engine, so no external binary is needed.
package render
