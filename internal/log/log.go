// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with the CLI handler and a log level from the
// BDORICTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("BDORICTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CLIHandler{})
	log.SetLevelFromString(level)
}

// CLIHandler renders one line per entry as "time LEVEL message k=v ...".
// Log output goes to stderr so command output on stdout stays scriptable.
type CLIHandler struct {
	// Writer overrides the destination; nil means stderr.
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *CLIHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s",
		time.Now().Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}
