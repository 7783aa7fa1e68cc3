/*
Package status describes the outcome of a rewrite run.

	            +-------------+
	            |  operation  |
	            +------+------+
	                   | FileResult events
	      +------------+------------+
	      |                         |
	+-----+------+           +------+-----+
	|  Reporter  |           |   Report   |
	|  (UI/logs) |           |  (results) |
	+------------+           +------------+

🎯 Purpose:
- Names the states an entry can end in (rewritten, unchanged, skipped, ...)
- Collects per-file results into a Report
- Defines the Reporter capability the rewriter emits progress to
- Formats results for people

🔄 Flow:
1. The rewriter announces the snapshot size (StartOperation)
2. Each processed entry is sent as a FileResult (TrackFile)
3. The finished Report is handed over (FinishOperation)

Silent runs use NopReporter; the console implementation lives in package log.

🔍 Example:

	f := status.NewDefaultFileFormatter()
	fmt.Println(f.FormatFile(status.FileResult{
		Name:         "app.css",
		Status:       status.StatusRewritten,
		Replacements: 2,
	}))
	// 📝 Rewrote app.css (2 replacements)
*/
package status
