// Package viz renders method comparisons for people.
//
// Every renderer writes to an io.Writer and never touches the trajectories:
//
//   - [ASCII]: terminal overlay via asciigraph, resampled on a shared x grid
//   - [SummaryTable]: lipgloss table of metrics and errors against the reference
//   - [PNG]: gonum/plot figure with the ground line and a legend
//   - [HTML]: standalone go-echarts page
//
// All overlays plot "Horizontal Distance (m)" against "Vertical Height (m)".
package viz
