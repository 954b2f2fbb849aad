package inventory

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/vk/archgrid/internal/report"
)

// symbolJob is one unit of extraction work: require the named symbols to be
// declared in one file, on behalf of one node.
type symbolJob struct {
	nodeID   string
	file     string
	required []string
	code     report.Code // MissingSymbol or MissingTestFunction
}

// runPool fans the jobs out across the configured number of workers and
// joins every finding before returning. Completion order must not influence
// the report, so the caller relies on the report's deterministic sort, and
// jobs touch no shared state beyond the results channel.
func (r *Reconciler) runPool(ctx context.Context, jobs []symbolJob) []report.Finding {
	if len(jobs) == 0 {
		return nil
	}

	jobChan := make(chan symbolJob)
	results := make(chan []report.Finding, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				results <- r.runJob(ctx, job)
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()
	close(results)

	var findings []report.Finding
	for fs := range results {
		findings = append(findings, fs...)
	}
	return findings
}

// runJob extracts one file and reports each required symbol it fails to
// declare. A file that is missing on disk was already reported by the
// existence check and produces nothing here; a file that cannot be parsed
// produces a single ParseFailure attributed to the owning node.
func (r *Reconciler) runJob(ctx context.Context, job symbolJob) []report.Finding {
	// Unrecognized extensions are non-code and excluded from symbol checks.
	if !r.extractor.Recognizes(job.file) {
		return nil
	}

	fullPath := filepath.Join(r.opts.BaseDir, job.file)
	src, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []report.Finding{{
			Severity: report.SeverityError,
			Code:     report.ParseFailure,
			NodeID:   job.nodeID,
			File:     job.file,
			Detail:   "cannot read file",
		}}
	}

	result, err := r.extractor.Extract(ctx, job.file, src)
	if err != nil {
		return []report.Finding{{
			Severity: report.SeverityError,
			Code:     report.ParseFailure,
			NodeID:   job.nodeID,
			File:     job.file,
			Detail:   err.Error(),
		}}
	}

	declared := result.Names()
	var findings []report.Finding
	for _, symbol := range job.required {
		if _, ok := declared[symbol]; ok {
			continue
		}
		findings = append(findings, report.Finding{
			Severity: report.SeverityError,
			Code:     job.code,
			NodeID:   job.nodeID,
			File:     job.file,
			Symbol:   symbol,
			Detail:   "symbol not declared at top level",
		})
	}
	return findings
}
