package problemscmd

import (
	"errors"

	"github.com/goliatone/go-capa/internal/commands"
	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/internal/problemfile"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the problem command handlers produced by RegisterProblemCommands.
type HandlerSet struct {
	Convert *ConvertMarkdownHandler
	Save    *SaveProblemHandler
	Import  *ImportFileHandler
}

// Subscribe registers every handler with the go-command dispatcher. The
// returned function removes the subscriptions.
func (s *HandlerSet) Subscribe() func() {
	var unsubscribers []func()
	if s.Convert != nil {
		unsubscribers = append(unsubscribers, dispatcher.SubscribeCommand(s.Convert).Unsubscribe)
	}
	if s.Save != nil {
		unsubscribers = append(unsubscribers, dispatcher.SubscribeCommand(s.Save).Unsubscribe)
	}
	if s.Import != nil {
		unsubscribers = append(unsubscribers, dispatcher.SubscribeCommand(s.Import).Unsubscribe)
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	convertHandlerOpts []commands.HandlerOption[ConvertMarkdownCommand]
	saveHandlerOpts    []commands.HandlerOption[SaveProblemCommand]
	importHandlerOpts  []commands.HandlerOption[ImportFileCommand]
}

// WithConvertHandlerOptions forwards options to the ConvertMarkdownHandler constructor.
func WithConvertHandlerOptions(opts ...commands.HandlerOption[ConvertMarkdownCommand]) Option {
	return func(cfg *options) {
		cfg.convertHandlerOpts = append(cfg.convertHandlerOpts, opts...)
	}
}

// WithSaveHandlerOptions forwards options to the SaveProblemHandler constructor.
func WithSaveHandlerOptions(opts ...commands.HandlerOption[SaveProblemCommand]) Option {
	return func(cfg *options) {
		cfg.saveHandlerOpts = append(cfg.saveHandlerOpts, opts...)
	}
}

// WithImportHandlerOptions forwards options to the ImportFileHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportFileCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// Dependencies lists what the problem handlers run against. Service and
// Loader are optional: without a service only conversions and dry-run
// imports succeed.
type Dependencies struct {
	Converter interfaces.MarkupConverter
	Service   problems.Service
	Loader    *problemfile.Loader
	Logging   interfaces.LoggerProvider
}

// RegisterProblemCommands builds the problem command handlers and registers them with the
// provided registry.
func RegisterProblemCommands(reg CommandRegistry, deps Dependencies, opts ...Option) (*HandlerSet, error) {
	if deps.Converter == nil {
		return nil, errors.New("problems command registration: converter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		Convert: NewConvertMarkdownHandler(deps.Converter, logging.CommandLogger(deps.Logging, "convert_markdown"), cfg.convertHandlerOpts...),
		Save:    NewSaveProblemHandler(deps.Service, logging.CommandLogger(deps.Logging, "save_problem"), cfg.saveHandlerOpts...),
		Import:  NewImportFileHandler(deps.Loader, deps.Converter, deps.Service, logging.CommandLogger(deps.Logging, "import_file"), cfg.importHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Convert, set.Save, set.Import} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
