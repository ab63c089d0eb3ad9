package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/okian/festgrid/internal/adapters/repository"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
)

const defaultBuffer = 15

type dump struct {
	Events      []model.PositionedEvent `json:"events"`
	Diagnostics []model.Diagnostic      `json:"diagnostics"`
	Groups      int                     `json:"groups"`
	MaxLanes    int                     `json:"max_lanes"`
}

func main() {
	var (
		eventsFile = flag.String("events", "", "YAML file with the festival events")
		pretty     = flag.Bool("pretty", false, "Indent the JSON output")
		buffer     = flag.Int("buffer", defaultBuffer, "Minutes two events may touch without overlapping")
	)
	flag.Parse()

	if *eventsFile == "" {
		os.Stderr.WriteString("usage: layout-dump -events file.yaml [-pretty] [-buffer minutes]\n")
		os.Exit(2)
	}
	if err := run(os.Stdout, *eventsFile, *pretty, *buffer); err != nil {
		os.Stderr.WriteString("layout-dump: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(w io.Writer, path string, pretty bool, buffer int) error {
	events, err := repository.LoadEventsFile(path)
	if err != nil {
		return err
	}
	res := layout.NewResolver(layout.WithOverlapBuffer(buffer)).Resolve(events)

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(dump{
		Events:      res.Events,
		Diagnostics: res.Diagnostics,
		Groups:      res.Groups,
		MaxLanes:    res.MaxLanes,
	})
}
