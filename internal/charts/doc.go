// Package charts lays out the figures of the softwood lumber paper with
// gonum/plot and rasterizes them to PNG.
//
// Each chart kind is a plain struct implementing Chart:
//
//	TimeSeries  lines over a year or time axis, with event markers, shaded
//	            spans and horizontal reference lines
//	Bar         horizontal bars labelled with their values
//	Pie         wedges labelled with category and percentage share
//	Scatter     points with an optional fitted line
//
// Figures are grayscale. A Renderer draws a chart at the configured size and
// DPI:
//
//	r := charts.NewRenderer(cfg.Render, files.NewManager(paths))
//	err := r.Save(charts.TimeSeries{
//		Title:  "Employment in Sawmills and Wood Preservation",
//		XAxis:  charts.YearAxis,
//		Lines:  []charts.Line{{XYs: charts.SeriesXYs(s, charts.YearAxis)}},
//	}, paths.ImagePath("employment.png"))
package charts
