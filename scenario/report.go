package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummary prints the final state of every actor as an aligned table.
func (r *Result) WriteSummary(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario %s: %d frames, %d events\n", r.Name, r.Frames, len(r.Records))
	fmt.Fprintln(tw, "ACTOR\tHEALTH\tRATIO\tSTATUS")
	for _, a := range r.Actors {
		if a.Max == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t%s\n", a.Name, status(a))
			continue
		}
		fmt.Fprintf(tw, "%s\t%g/%g\t%.2f\t%s\n", a.Name, a.Current, a.Max, a.Ratio, status(a))
	}
	return tw.Flush()
}

func status(a ActorSummary) string {
	s := "alive"
	switch {
	case a.Despawned:
		return "despawned"
	case a.Max == 0:
		return "no health"
	case a.Dead:
		s = "dead"
	case a.Critical:
		s = "critical"
	}
	if a.Invincible {
		s += ",invincible"
	}
	return s
}
