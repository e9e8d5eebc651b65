// Package jobs schedules background work.
package jobs

import (
	"io/fs"
	"time"
)

// Color tags a job in dashboards.
type Color string

const (
	Red  Color = "red"
	Blue Color = "blue"

	// Crimson repeats Red.
	Crimson = Red

	defaultColor = Red
	purple Color = "purple"
)

// Job is a scheduled unit of work.
type Job struct {
	// Timeout bounds a single run.
	Timeout time.Duration `json:"timeout"`
	Mode    fs.FileMode   `json:"mode"`
	Color   Color         `json:"color"`
}
