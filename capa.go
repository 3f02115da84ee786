// Package capa converts problem editor markdown into problem XML and keeps
// the problems authored with it.
package capa

import (
	"context"
	"io/fs"

	problemscmd "github.com/goliatone/go-capa/internal/commands/problems"
	"github.com/goliatone/go-capa/internal/di"
	"github.com/goliatone/go-capa/internal/editor"
	"github.com/goliatone/go-capa/internal/markup"
	"github.com/goliatone/go-capa/internal/problemfile"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

// ProblemService exports the problem store contract.
type ProblemService = problems.Service

// Problem exports the stored problem record.
type Problem = problems.Problem

// SaveMarkdownInput exports the simple-mode save payload.
type SaveMarkdownInput = problems.SaveMarkdownInput

// SaveXMLInput exports the advanced-mode save payload.
type SaveXMLInput = problems.SaveXMLInput

// ConversionReport exports the conversion report DTO.
type ConversionReport = interfaces.ConversionReport

// EditorSession exports the editor session.
type EditorSession = editor.Session

// Confirmer exports the confirmation hook used before switching to advanced mode.
type Confirmer = editor.Confirmer

// Toolbar exports the editor toolbar helpers.
type Toolbar = editor.Toolbar

// ProblemFile exports a parsed problem file.
type ProblemFile = problemfile.File

// CommandHandlers exports the problem command handlers.
type CommandHandlers = problemscmd.HandlerSet

var (
	ErrProblemNotFound    = problems.ErrProblemNotFound
	ErrConversionDeclined = editor.ErrConversionDeclined
	ErrAlreadyAdvanced    = editor.ErrAlreadyAdvanced
)

// Convert turns problem editor markdown into problem XML with default options.
func Convert(markdown string) string {
	return markup.Convert(markdown).XML
}

// ConvertWithReport converts markdown and describes the result.
func ConvertWithReport(markdown string) ConversionReport {
	return markup.Report(markup.Convert(markdown))
}

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Converter returns the configured markdown converter.
func (m *Module) Converter() interfaces.MarkupConverter {
	return m.container.Converter()
}

// Convert converts markdown with the module configuration.
func (m *Module) Convert(markdown string) string {
	return m.container.Converter().Convert(markdown)
}

// Problems returns the configured problem service.
func (m *Module) Problems() ProblemService {
	return m.container.ProblemService()
}

// Toolbar returns the editor toolbar.
func (m *Module) Toolbar() Toolbar {
	return m.container.Toolbar()
}

// OpenEditor starts an editor session on a stored problem. A nil problem
// opens an empty simple-mode session.
func (m *Module) OpenEditor(problem *Problem, confirmer Confirmer) *EditorSession {
	return m.container.OpenSession(problem, confirmer)
}

// SaveSession persists the current state of session under urlName.
func (m *Module) SaveSession(ctx context.Context, urlName, displayName string, session *EditorSession) (*Problem, error) {
	snapshot, err := session.Save(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.Mode == editor.ModeAdvanced {
		return m.Problems().SaveXML(ctx, SaveXMLInput{URLName: urlName, DisplayName: displayName, XML: snapshot.XML})
	}
	return m.Problems().SaveMarkdown(ctx, SaveMarkdownInput{URLName: urlName, DisplayName: displayName, Markdown: snapshot.Markdown})
}

// LoadProblemFiles reads problem files under dir.
func (m *Module) LoadProblemFiles(ctx context.Context, fsys fs.FS, dir, pattern string) ([]*ProblemFile, error) {
	return m.container.ProblemFileLoader(fsys).LoadDirectory(ctx, dir, pattern)
}

// Commands builds the command handlers, reading imports from fsys.
func (m *Module) Commands(fsys fs.FS) (*CommandHandlers, error) {
	return m.container.Commands(fsys)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
