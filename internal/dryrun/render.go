package dryrun

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render writes steps to w as an indented table or as JSON.
func Render(w io.Writer, steps []*Step, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if steps == nil {
			steps = []*Step{}
		}
		return enc.Encode(steps)
	case FormatText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tEVENT\tPRIORITY\tACTION")
		for _, step := range steps {
			writeStep(tw, step, 0)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown plan format %q", format)
	}
}

func writeStep(w io.Writer, step *Step, depth int) {
	indent := strings.Repeat("  ", depth)
	event, priority := "-", "-"
	if step.Kind == KindSubscribe {
		event = step.Event
		priority = strconv.Itoa(step.Priority)
	}
	fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", indent, step.Kind, event, priority, step.Action)
	for _, child := range step.Effects {
		writeStep(w, child, depth+1)
	}
}
