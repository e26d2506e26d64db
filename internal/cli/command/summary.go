package command

import (
	"sort"
	"strconv"

	"github.com/yndnr/mapzone-go/internal/cli/output"
	"github.com/yndnr/mapzone-go/internal/core/service"
)

// Summary is the printable form of a service.Report.
type Summary struct {
	RunID            string                 `json:"run_id" yaml:"run_id"`
	Variant          string                 `json:"variant" yaml:"variant"`
	Workers          int                    `json:"workers" yaml:"workers"`
	InsertsPerWorker int                    `json:"inserts_per_worker" yaml:"inserts_per_worker"`
	Expected         int                    `json:"expected_entries" yaml:"expected_entries"`
	Entries          int                    `json:"entries" yaml:"entries"`
	Complete         bool                   `json:"complete" yaml:"complete"`
	Elapsed          string                 `json:"elapsed" yaml:"elapsed"`
	Samples          map[string]int         `json:"samples" yaml:"samples"`
	PerWorker        []service.WorkerReport `json:"per_worker,omitempty" yaml:"per_worker,omitempty"`
}

// NewSummary builds a Summary from a report.
func NewSummary(r *service.Report) *Summary {
	return &Summary{
		RunID:            r.RunID,
		Variant:          r.Variant,
		Workers:          r.Workers,
		InsertsPerWorker: r.InsertsPerWorker,
		Expected:         r.Expected,
		Entries:          r.Entries,
		Complete:         r.Complete(),
		Elapsed:          output.FormatValue(r.Elapsed),
		Samples:          r.Samples,
		PerWorker:        r.PerWorker,
	}
}

// Tables implements output.Tabular.
func (s *Summary) Tables() []*output.Table {
	run := output.NewTable("run", "FIELD", "VALUE")
	run.AddRow("run_id", output.FormatValue(s.RunID))
	run.AddRow("variant", s.Variant)
	run.AddRow("workers", strconv.Itoa(s.Workers))
	run.AddRow("inserts_per_worker", strconv.Itoa(s.InsertsPerWorker))
	run.AddRow("expected_entries", strconv.Itoa(s.Expected))
	run.AddRow("entries", strconv.Itoa(s.Entries))
	run.AddRow("complete", strconv.FormatBool(s.Complete))
	run.AddRow("elapsed", s.Elapsed)

	channels := make([]string, 0, len(s.Samples))
	for ch := range s.Samples {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	plots := output.NewTable("plots", "CHANNEL", "SAMPLES")
	for _, ch := range channels {
		plots.AddRow(ch, strconv.Itoa(s.Samples[ch]))
	}

	tables := []*output.Table{run, plots}
	if len(s.PerWorker) > 0 {
		workers := output.NewTable("workers", "WORKER", "KEYS", "INSERTED", "CHANNEL")
		for _, w := range s.PerWorker {
			workers.AddRow(w.Name,
				"["+strconv.Itoa(w.Start)+", "+strconv.Itoa(w.End)+")",
				strconv.Itoa(w.Inserted),
				output.FormatValue(w.Channel))
		}
		tables = append(tables, workers)
	}
	return tables
}
