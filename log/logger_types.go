package log

import (
	"io"
	"os"
	"sync"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	spacer          = " | "

	defaultLevels = "INFO|WARN|ERROR"
)

// Config holds the user configurable logger settings
type Config struct {
	Enabled *bool  `json:"enabled"`
	Level   string `json:"level"`
	Output  string `json:"output"`
}

// Levels flags each logging level on or off for a sublogger
type Levels struct {
	Info  bool
	Debug bool
	Warn  bool
	Error bool
}

// SubLogger is a registered logging channel for one subsystem
type SubLogger struct {
	name string
	Levels
	output io.Writer
}

var (
	mu         sync.RWMutex
	subLoggers = map[string]*SubLogger{}

	enabled      = true
	globalOutput io.Writer = os.Stdout
	globalLevels           = splitLevel(defaultLevels)
)
