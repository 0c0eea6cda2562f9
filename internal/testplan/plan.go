package testplan

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/distboot/distboot/internal/models"
)

// Plan writes test-suite descriptors to an output stream. The record
// syntax is "-- TEST --" on a single line, followed by the name of the
// test, the environment it needs and the command to run, all three on
// their own lines. Every other line in the stream is a comment; the
// orchestrator parses the records positionally, so this format must
// not change.
type Plan struct {
	w      io.Writer
	config *models.TestPlanConfig
	err    error
}

// NewPlan creates a plan writing to w
func NewPlan(config *models.TestPlanConfig, w io.Writer) *Plan {
	return &Plan{w: w, config: config}
}

// Err returns the first write error, if any. Emission calls after a
// failed write are no-ops, so call sites can stay declarative.
func (p *Plan) Err() error {
	return p.err
}

// PlanSuite plans a suite run through the project's own test runner,
// addressed by its dotted suite path
func (p *Plan) PlanSuite(env, suite string) {
	runner := filepath.Join(p.config.BinDir, "testrunner")
	p.emit(suite, env, []string{runner, "--suite", suite, configuration})
}

// PlanCommand plans a black-box suite with an explicit command line
func (p *Plan) PlanCommand(name, env string, cmdline []string) {
	p.emit(name, env, cmdline)
}

// Skip records that a suite is not being planned, with a reason. Skip
// lines are comments to the orchestrator but keep the gap visible in
// the stream.
func (p *Plan) Skip(name, reason string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "skiptestsuite: %s, %s\n", name, reason)
}

// configuration is appended to every suite invocation; the
// orchestrator substitutes the variable per environment
const configuration = "--configfile=$CONF_PATH"

// BlackboxCmdline builds the command line for a black-box shell suite:
// the script path under the blackbox test directory, its arguments,
// then the configuration option
func (p *Plan) BlackboxCmdline(script string, args ...string) []string {
	cmdline := []string{filepath.Join(p.config.SrcDir, "testprogs", "blackbox", script)}
	cmdline = append(cmdline, args...)
	return append(cmdline, configuration)
}

func (p *Plan) emit(name, env string, cmdline []string) {
	if p.err != nil {
		return
	}
	fullname := name
	if env != "none" {
		fullname = fmt.Sprintf("%s(%s)", name, env)
	}
	_, p.err = fmt.Fprintf(p.w, "-- TEST --\n%s\n%s\n%s\n", fullname, env, strings.Join(cmdline, " "))
}
