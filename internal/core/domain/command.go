package domain

import (
	"fmt"
	"os"
)

// Flag is a single bundler flag with an optional value. Keeping flags
// structured until serialization avoids quoting bugs when extra arguments
// contain spaces or nested flags.
type Flag struct {
	Name  string
	Value string
}

// BuildCommand is the fully materialized bundler invocation, derived
// deterministically from a request and a resolved toolchain. It is immutable
// once assembled.
type BuildCommand struct {
	interpreter string
	flags       []Flag
	extra       []string
	entryScript string
}

// Interpreter returns the interpreter path the command runs under.
func (c *BuildCommand) Interpreter() string {
	return c.interpreter
}

// Argv serializes the command into an argument vector: the interpreter,
// the bundler module invocation, baseline flags, verbatim extra tokens and
// finally the entry script.
func (c *BuildCommand) Argv() []string {
	argv := []string{c.interpreter, "-m", "PyInstaller"}
	for _, f := range c.flags {
		argv = append(argv, f.Name)
		if f.Value != "" {
			argv = append(argv, f.Value)
		}
	}
	argv = append(argv, c.extra...)
	argv = append(argv, c.entryScript)
	return argv
}

// String renders the full command line for the log, so a failing build can be
// reproduced by hand.
func (c *BuildCommand) String() string {
	return fmt.Sprintf("%v", c.Argv())
}

// StatFunc checks file existence during assembly. Tests substitute a fake so
// AssembleCommand stays deterministic.
type StatFunc func(path string) error

func osStat(path string) error {
	_, err := os.Stat(path)
	return err
}

// AssembleCommand is a pure function from (request, toolchain) to the bundler
// invocation. Identical inputs always produce identical output.
//
// The baseline requests single-file output, GUI mode, a cleared build cache,
// no UPX compression (antivirus false positives), and explicitly declares the
// windowing and image-library runtime hooks as hidden imports: the bundler's
// static analysis cannot discover them through the tools' dynamic import
// patterns. Extra request tokens come after the baseline so callers can
// override defaults.
//
// A supplied icon path that does not exist drops the icon flag and returns a
// warning instead of failing; the build proceeds without an icon.
func AssembleCommand(req *BuildRequest, tc *ResolvedToolchain, stat StatFunc) (*BuildCommand, []string) {
	if stat == nil {
		stat = osStat
	}

	flags := []Flag{
		{Name: "--noconfirm"},
		{Name: "--clean"},
		{Name: "--onefile"},
		{Name: "--windowed"},
		{Name: "--noupx"},
		{Name: "--name", Value: req.ExecutableName},
		{Name: "--hidden-import", Value: "tkinter"},
		{Name: "--hidden-import", Value: "tkinter.ttk"},
		{Name: "--hidden-import", Value: "tkinter.filedialog"},
		{Name: "--hidden-import", Value: "tkinter.messagebox"},
		{Name: "--hidden-import", Value: "PIL.Image"},
		{Name: "--hidden-import", Value: "PIL.ImageTk"},
		{Name: "--hidden-import", Value: "PIL._tkinter_finder"},
	}

	var warnings []string
	if req.IconPath != "" {
		if err := stat(req.IconPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("icon %q not found, building without an icon", req.IconPath))
		} else {
			flags = append(flags, Flag{Name: "--icon", Value: req.IconPath})
		}
	}

	extra := make([]string, len(req.ExtraArgs))
	copy(extra, req.ExtraArgs)

	return &BuildCommand{
		interpreter: tc.Candidate.InterpreterPath,
		flags:       flags,
		extra:       extra,
		entryScript: req.EntryScript,
	}, warnings
}
