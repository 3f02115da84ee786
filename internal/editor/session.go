package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

// Mode is the editor view the author is working in.
type Mode string

const (
	// ModeSimple edits markdown; XML is derived on save.
	ModeSimple Mode = "simple"
	// ModeAdvanced edits XML directly. There is no way back to ModeSimple.
	ModeAdvanced Mode = "advanced"
)

// ConversionWarning is shown before a problem is converted to XML.
const ConversionWarning = "If you use the Advanced Editor, this problem will be converted to XML and you will not be able to return to the Simple Editor Interface.\n\nProceed to the Advanced Editor and convert this problem to XML?"

var (
	ErrConversionDeclined = errors.New("editor: conversion to advanced mode declined")
	ErrAlreadyAdvanced    = errors.New("editor: problem is already in advanced mode")
	ErrAdvancedMode       = errors.New("editor: markdown cannot be edited in advanced mode")
	ErrSimpleMode         = errors.New("editor: xml cannot be edited in simple mode")
)

// Confirmer asks the author to accept the one-way conversion.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// Snapshot is the stored pair produced by Save.
type Snapshot struct {
	Mode     Mode
	Markdown string
	XML      string
	Changed  bool
}

// Session tracks one problem being edited.
type Session struct {
	mu        sync.Mutex
	converter interfaces.MarkupConverter
	confirmer Confirmer
	logger    interfaces.Logger

	mode     Mode
	markdown string
	xml      string

	storedMarkdown string
	storedXML      string
}

// Option configures a Session.
type Option func(*Session)

// WithConfirmer requires confirmation before switching to advanced mode.
func WithConfirmer(confirmer Confirmer) Option {
	return func(s *Session) {
		s.confirmer = confirmer
	}
}

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession opens a session on a stored problem. A problem with stored
// markdown opens in simple mode; one without markdown but with XML was
// already converted and opens in advanced mode.
func NewSession(converter interfaces.MarkupConverter, markdown *string, xml string, opts ...Option) *Session {
	s := &Session{
		converter: converter,
		logger:    logging.NoOp(),
		mode:      ModeSimple,
		xml:       xml,
		storedXML: xml,
	}
	if markdown != nil {
		s.markdown = *markdown
		s.storedMarkdown = *markdown
	} else if xml != "" {
		s.mode = ModeAdvanced
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Mode reports the active mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Markdown returns the markdown being edited.
func (s *Session) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown
}

// XML returns the XML being edited in advanced mode, or the last saved XML
// in simple mode.
func (s *Session) XML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xml
}

// SetMarkdown replaces the markdown. Only valid in simple mode.
func (s *Session) SetMarkdown(markdown string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeAdvanced {
		return ErrAdvancedMode
	}
	s.markdown = markdown
	return nil
}

// SetXML replaces the XML. Only valid in advanced mode.
func (s *Session) SetXML(xml string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeSimple {
		return ErrSimpleMode
	}
	s.xml = xml
	return nil
}

// SwitchToAdvanced converts the markdown to XML and leaves simple mode for
// good. When a Confirmer is configured the author must accept the
// conversion first.
func (s *Session) SwitchToAdvanced(ctx context.Context) (string, error) {
	s.mu.Lock()
	mode, markdown := s.mode, s.markdown
	s.mu.Unlock()

	if mode == ModeAdvanced {
		return "", ErrAlreadyAdvanced
	}
	if s.confirmer != nil {
		ok, err := s.confirmer.Confirm(ctx, ConversionWarning)
		if err != nil {
			return "", err
		}
		if !ok {
			s.logger.Debug("editor.switch.declined")
			return "", ErrConversionDeclined
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	xml := s.converter.Convert(markdown)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeAdvanced {
		return "", ErrAlreadyAdvanced
	}
	s.mode = ModeAdvanced
	s.xml = xml
	s.logger.Info("editor.switch.advanced", "xml_bytes", len(xml))
	return xml, nil
}

// Save produces the pair to persist. In simple mode the markdown is
// converted and both values are stored; in advanced mode the markdown is
// cleared and the XML kept. Changed is false when nothing differs from the
// previous save, in which case the stored values are returned untouched.
func (s *Session) Save(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Mode: s.mode}
	switch s.mode {
	case ModeSimple:
		if s.markdown != s.storedMarkdown {
			s.storedMarkdown = s.markdown
			s.storedXML = s.converter.Convert(s.markdown)
			s.xml = s.storedXML
			snap.Changed = true
		}
	case ModeAdvanced:
		if s.xml != s.storedXML || s.storedMarkdown != "" {
			s.storedMarkdown = ""
			s.storedXML = s.xml
			snap.Changed = true
		}
	}
	snap.Markdown = s.storedMarkdown
	snap.XML = s.storedXML
	s.logger.Debug("editor.save", "mode", string(s.mode), "changed", snap.Changed)
	return snap, nil
}
