package logger

import (
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// HCLogger implements ports.Logger on top of go-hclog.
// Errors are always emitted; debug and info output requires verbose mode.
type HCLogger struct {
	log hclog.Logger
}

// New creates an HCLogger writing to out.
func New(verbose bool, out io.Writer) *HCLogger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return &HCLogger{
		log: hclog.New(&hclog.LoggerOptions{
			Name:   "kittysh",
			Level:  level,
			Output: out,
		}),
	}
}

// NewStd creates an HCLogger writing to stderr.
func NewStd(verbose bool) *HCLogger {
	return New(verbose, os.Stderr)
}

// Named returns a sub-logger tagged with a component name.
func (l *HCLogger) Named(name string) *HCLogger {
	return &HCLogger{log: l.log.Named(name)}
}

func (l *HCLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, flatten(fields)...)
}

func (l *HCLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, flatten(fields)...)
}

func (l *HCLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, flatten(fields)...)
}

func (l *HCLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log.Error(msg, args...)
}

// flatten turns a field map into hclog key/value pairs in stable key order.
func flatten(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
