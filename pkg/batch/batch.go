// Package batch extracts the documentation of many component nodes concurrently.
package batch

import (
	"fmt"
	"sync"

	"github.com/kataras/figma-sparrow/pkg/extractor"
	"github.com/kataras/figma-sparrow/pkg/figma"
)

// DefaultParallel is the number of extractions run at once when none is given.
const DefaultParallel = 5

// Job is a single component node to extract.
type Job struct {
	NodeID      string
	Node        *figma.Node
	Description string
}

// Result holds the extracted components in job order.
type Result struct {
	Docs   []*extractor.ComponentDocs
	Errors []error // non-fatal per-node failures, in job order
}

// JobsFromNodes builds one job per requested node ID, in the order given.
// IDs missing from the response, or returned as null, are reported as errors.
func JobsFromNodes(resp *figma.NodesResponse, nodeIDs []string) ([]Job, []error) {
	var (
		jobs []Job
		errs []error
	)

	for _, id := range nodeIDs {
		data := resp.Nodes[id]
		if data == nil {
			errs = append(errs, fmt.Errorf("node %s not found in file %q", id, resp.Name))
			continue
		}

		jobs = append(jobs, Job{
			NodeID:      id,
			Node:        &data.Document,
			Description: data.Description(),
		})
	}

	return jobs, errs
}

// ProgressFunc is called once per finished job with the number of finished jobs
// so far. Calls are serialized.
type ProgressFunc func(done, total int)

// Option configures ExtractAll.
type Option func(*settings)

type settings struct {
	progress ProgressFunc
}

// WithProgress reports every finished job to fn.
func WithProgress(fn ProgressFunc) Option {
	return func(s *settings) {
		s.progress = fn
	}
}

// ExtractAll runs extractor.Extract for every job with at most parallel jobs in
// flight. A failing job does not stop the others. Variable names are resolved
// through vars, which is only read.
func ExtractAll(jobs []Job, vars figma.VariableResolver, parallel int, opts ...Option) *Result {
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		mu   sync.Mutex
		done int
	)
	finished := func() {
		if cfg.progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		cfg.progress(done, len(jobs))
	}

	docs := make([]*extractor.ComponentDocs, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer finished()

			d, err := extractor.Extract(job.NodeID, job.Node, job.Description, vars)
			if err != nil {
				errs[i] = fmt.Errorf("failed to extract node %s: %w", job.NodeID, err)
				return
			}
			docs[i] = d
		}(i, job)
	}

	wg.Wait()

	result := &Result{}
	for i := range jobs {
		if errs[i] != nil {
			result.Errors = append(result.Errors, errs[i])
			continue
		}
		result.Docs = append(result.Docs, docs[i])
	}

	return result
}
