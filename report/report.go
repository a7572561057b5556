// Package report runs requirement checks and prints the developer checklist.
package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/c360studio/assetcheck/asset"
	"github.com/c360studio/assetcheck/checker"
)

const (
	glyphOK   = "✓"
	glyphFail = "✗"
)

// Summary aggregates the results of one run.
type Summary struct {
	Results  []checker.Result
	Failures int
}

// OK reports whether every checked requirement was present.
func (s Summary) OK() bool {
	return s.Failures == 0
}

// Reporter prints check results to a writer.
type Reporter struct {
	out    io.Writer
	logger *slog.Logger
}

// New creates a reporter writing to out. A nil logger uses slog.Default.
func New(out io.Writer, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{out: out, logger: logger}
}

// Run checks reqs against root in order, printing one line per requirement
// followed by a summary. Failures are accumulated rather than stopping the
// run; an unexpected I/O error aborts it and is returned.
func (r *Reporter) Run(root string, reqs []asset.Requirement) (Summary, error) {
	fmt.Fprintln(r.out, "Verifying required public assets...")
	fmt.Fprintln(r.out)

	summary := Summary{Results: make([]checker.Result, 0, len(reqs))}
	for _, req := range reqs {
		res, err := checker.Check(root, req)
		if err != nil {
			return summary, err
		}

		glyph := glyphOK
		if !res.OK {
			glyph = glyphFail
			summary.Failures++
		}
		fmt.Fprintf(r.out, "  %s %s\n", glyph, res.Message)

		r.logger.Debug("Checked requirement",
			"label", req.Label,
			"kind", req.Kind.String(),
			"ok", res.OK,
			"missing_members", len(res.Missing))

		summary.Results = append(summary.Results, res)
	}

	if summary.Failures > 0 {
		fmt.Fprintf(r.out, "\n%d requirement(s) were missing or incomplete. "+
			"Download the assets listed above and place them under %s/.\n", summary.Failures, asset.AssetsDir)
	} else {
		fmt.Fprintln(r.out, "\nAll required assets are present.")
	}

	return summary, nil
}

// List prints every requirement and the members of each asset pack without
// touching the filesystem.
func (r *Reporter) List(reqs []asset.Requirement) {
	fmt.Fprintln(r.out, "Known asset requirements:")
	fmt.Fprintln(r.out)

	for _, req := range reqs {
		fmt.Fprintf(r.out, "- %s -> %s\n", req.Label, req.Path)
		if req.IsDirectory() {
			for _, member := range req.Members {
				fmt.Fprintf(r.out, "    • %s\n", member)
			}
		}
	}
}
