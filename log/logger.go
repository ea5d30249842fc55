package log

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	infoHeader  = "[INFO]"
	debugHeader = "[DEBUG]"
	warnHeader  = "[WARN]"
	errorHeader = "[ERROR]"
)

var errSubLoggerNotFound = errors.New("sublogger not found")

// SetupGlobalLogger applies a logger configuration to every registered
// sublogger
func SetupGlobalLogger(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		return
	}
	if c.Enabled != nil {
		enabled = *c.Enabled
	}
	levels := globalLevels
	if c.Level != "" {
		levels = splitLevel(c.Level)
	}
	globalLevels = levels
	for _, sl := range subLoggers {
		sl.Levels = levels
	}
}

// SetGlobalOutput redirects every registered sublogger to w
func SetGlobalOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	globalOutput = w
	for _, sl := range subLoggers {
		sl.output = w
	}
}

// SetLevel adjusts the levels of a single registered sublogger
func SetLevel(name, level string) (*SubLogger, error) {
	mu.Lock()
	defer mu.Unlock()
	sl, ok := subLoggers[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errSubLoggerNotFound, name)
	}
	sl.Levels = splitLevel(level)
	return sl, nil
}

func registerNewSubLogger(name string) *SubLogger {
	mu.Lock()
	defer mu.Unlock()
	name = strings.ToUpper(name)
	sl := &SubLogger{
		name:   name,
		Levels: globalLevels,
		output: globalOutput,
	}
	subLoggers[name] = sl
	return sl
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch level := enabledLevels[x]; level {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func (sl *SubLogger) stage(header, data string) {
	if sl.output == nil {
		return
	}
	fmt.Fprintf(sl.output, "%s%s%s%s%s%s%s\n",
		time.Now().Format(timestampFormat), spacer,
		header, spacer,
		sl.name, spacer,
		data)
}

func (sl *SubLogger) stagef(header, format string, v ...interface{}) {
	sl.stage(header, fmt.Sprintf(format, v...))
}

func (sl *SubLogger) stageln(header string, v ...interface{}) {
	sl.stage(header, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
