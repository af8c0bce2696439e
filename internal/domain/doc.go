// Package domain models the NOAA SWPC OVATION aurora forecast grid.
//
// # Data Source
//
// The Space Weather Prediction Center publishes the OVATION Prime aurora
// nowcast as a plain-text file at
// https://services.swpc.noaa.gov/text/aurora-nowcast-map.txt. The file is
// regenerated every few minutes and covers roughly the next 30 minutes.
//
// # File Format
//
// Header lines start with "#". One of them carries the validity time:
//
//	# Product Valid At: 2017-04-24 19:15
//
// The date/time is always the last 16 characters of that line, in
// "YYYY-MM-DD HH:MM" form (UTC). Everything else in the header is free text.
//
// The body is a whitespace-delimited numeric matrix with no header row:
//
//	512 rows    latitude  -90 .. 90   (0.3515625 deg/row), first row is -90
//	1024 cols   longitude   0 .. 360  (0.32846715 deg/col)
//
// Values are aurora probabilities (0-100) on a Plate Carrée grid.
//
// # Sanity Checks
//
// Upstream outages tend to return HTML error pages or truncated bodies with a
// 200 status. [ParseForecast] rejects any payload whose body is not exactly
// 512x1024 or whose timestamp year does not start with "20", so garbage never
// reaches the renderer.
//
// # Output Naming
//
// Rendered images are named "<prefix>_<stamp>.<ext>" where stamp follows the
// historical "%Y-%M-%d-%H-%M" layout: year, minute, day, hour, minute. The
// month never appears. See [FilenameStamp].
package domain
