package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/festgrid/internal/domain/model"
)

// eventsFile is the on-disk shape of a seed file. A bare list of events is
// accepted too.
type eventsFile struct {
	Events []model.Event `yaml:"events"`
}

// LoadEventsFile reads a YAML list of events from path.
func LoadEventsFile(path string) ([]model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}
	return ParseEvents(data)
}

// ParseEvents decodes either `events: [...]` or a top-level list.
func ParseEvents(data []byte) ([]model.Event, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]

	var events []model.Event
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&events); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
		}
	case yaml.MappingNode:
		var f eventsFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
		}
		events = f.Events
	default:
		return nil, fmt.Errorf("%w: expected a list or an events mapping", ErrLoadEvents)
	}
	return events, nil
}
