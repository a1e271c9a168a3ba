// Package board composes curated trends into an exportable heatmap layout.
//
// A board is built from a flat list of trends, each carrying a positive
// weight. Compose groups the trends by category, allocates each category a
// horizontal band whose height is proportional to the category's share of
// the total weight, and runs the squarified treemap engine once per band.
// The result is a serializable Layout of positioned tiles that a renderer
// (not part of this module) can paint.
//
// Canvas presets match the social export formats the dashboard targets:
// Feed (1080x1350) and Story (1080x1920), each reserving header and footer
// bands for branding overlays.
package board
