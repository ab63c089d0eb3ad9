package testevents

import (
	"time"

	"github.com/okian/festgrid/internal/domain/model"
)

// Config holds configuration for the event test
type Config struct {
	BaseURL        string        // Base URL of the service
	NumEvents      int           // Number of events to generate
	InvalidPercent int           // Share of events generated with a bad time or venue
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // YAML seed file the generated events are written to
	LogFile        string        // Log file for test output
	Verbose        bool          // Enable verbose logging
}

// LayoutResponse is the body of GET /layout.
type LayoutResponse struct {
	Fingerprint   string                  `json:"fingerprint"`
	Events        []model.PositionedEvent `json:"events"`
	Diagnostics   []model.Diagnostic      `json:"diagnostics"`
	Groups        int                     `json:"groups"`
	TotalLanesMax int                     `json:"total_lanes_max"`
}

// Stats holds test statistics
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsFailed     int
	EventsPositioned int
	EventsDropped    int
	OverlapGroups    int
	MaxLanes         int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
