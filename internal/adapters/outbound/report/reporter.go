package report

import (
	"fmt"
	"io"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/tui"
	"github.com/repovalidate/repovalidate/internal/domain"
)

// Reporter implements domain.ResultReporter: every outcome goes to the live
// log, failures are also appended to the FailureLog.
type Reporter struct {
	live io.Writer
	log  *FailureLog
}

func NewReporter(live io.Writer, log *FailureLog) *Reporter {
	return &Reporter{live: live, log: log}
}

func (r *Reporter) Passed(o domain.Outcome) {
	fmt.Fprintln(r.live, tui.RenderPass(Header(o)))
}

func (r *Reporter) Failed(o domain.Outcome) error {
	lines := FormatFailure(o)
	fmt.Fprintln(r.live, tui.RenderFailure(lines))
	if r.log == nil {
		return nil
	}
	return r.log.Append(lines)
}

func (r *Reporter) Skipped(path string) {
	fmt.Fprintln(r.live, tui.RenderSkip(path))
}
