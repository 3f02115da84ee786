package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-capa/pkg/interfaces"
)

const (
	rootModule        = "capa"
	markupModule      = "capa.markup"
	editorModule      = "capa.editor"
	problemsModule    = "capa.problems"
	problemFileModule = "capa.problemfile"
	commandsModule    = "capa.commands"
)

const (
	fieldProblemURLName = "url_name"
	fieldProblemPath    = "problem_path"
	fieldCommand        = "command"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached as
// a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// MarkupLogger returns the logger used by the markdown converter.
func MarkupLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markupModule)
}

// EditorLogger returns the logger used by editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// ProblemsLogger returns the logger used by the problem service.
func ProblemsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, problemsModule)
}

// ProblemFileLogger returns the logger used when loading problem files.
func ProblemFileLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, problemFileModule)
}

// CommandLogger returns the logger for a command handler, namespaced under
// capa.commands.
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	module := commandsModule
	if command != "" {
		module = commandsModule + "." + command
	}
	return WithFields(ModuleLogger(provider, module), map[string]any{fieldCommand: command})
}

// WithProblemContext annotates a logger with the problem identifiers that
// are known.
func WithProblemContext(logger interfaces.Logger, urlName, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(urlName); trimmed != "" {
		fields[fieldProblemURLName] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldProblemPath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
