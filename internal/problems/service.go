package problems

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-capa/internal/identity"
	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/pkg/interfaces"
	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service manages stored problems.
type Service interface {
	SaveMarkdown(ctx context.Context, input SaveMarkdownInput) (*Problem, error)
	SaveXML(ctx context.Context, input SaveXMLInput) (*Problem, error)
	Get(ctx context.Context, id uuid.UUID) (*Problem, error)
	GetByURLName(ctx context.Context, urlName string) (*Problem, error)
	List(ctx context.Context) ([]*Problem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaveMarkdownInput stores a problem edited in simple mode. The XML is
// derived from Markdown.
type SaveMarkdownInput struct {
	URLName     string
	DisplayName string
	Markdown    string
	Metadata    map[string]any
}

// SaveXMLInput stores a problem edited in advanced mode. Any markdown
// previously stored for the problem is cleared.
type SaveXMLInput struct {
	URLName     string
	DisplayName string
	XML         string
	Metadata    map[string]any
}

var (
	ErrRepositoryRequired = errors.New("problems: repository required")
	ErrConverterRequired  = errors.New("problems: converter required")
	ErrURLNameRequired    = errors.New("problems: url_name or display_name required")
	ErrURLNameInvalid     = errors.New("problems: url_name invalid")
	ErrXMLRequired        = errors.New("problems: xml required")
	ErrProblemNotFound    = errors.New("problems: problem not found")
)

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo      ProblemRepository
	converter interfaces.MarkupConverter
	now       func() time.Time
	logger    interfaces.Logger
	activity  interfaces.ActivitySink
}

// NewService constructs a problem service.
func NewService(repo ProblemRepository, converter interfaces.MarkupConverter, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	if converter == nil {
		panic(ErrConverterRequired)
	}
	s := &service{
		repo:      repo,
		converter: converter,
		now:       time.Now,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SaveMarkdown(ctx context.Context, input SaveMarkdownInput) (*Problem, error) {
	markdown := input.Markdown
	xml := s.converter.Convert(markdown)
	return s.save(ctx, input.URLName, input.DisplayName, &markdown, xml, input.Metadata)
}

func (s *service) SaveXML(ctx context.Context, input SaveXMLInput) (*Problem, error) {
	if strings.TrimSpace(input.XML) == "" {
		return nil, ErrXMLRequired
	}
	return s.save(ctx, input.URLName, input.DisplayName, nil, input.XML, input.Metadata)
}

func (s *service) save(ctx context.Context, rawURLName, displayName string, markdown *string, xml string, metadata map[string]any) (*Problem, error) {
	urlName, err := ResolveURLName(rawURLName, displayName)
	if err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = urlName
	}
	logger := logging.WithProblemContext(s.logger.WithContext(ctx), urlName, "")
	now := s.now().UTC()

	existing, err := s.repo.GetByURLName(ctx, urlName)
	if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
		record := &Problem{
			ID:          identity.ProblemUUID(urlName),
			URLName:     urlName,
			DisplayName: displayName,
			Markdown:    markdown,
			XML:         xml,
			Metadata:    maps.Clone(metadata),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			logger.Error("problems.save.failed", "error", err)
			return nil, err
		}
		logger.Info("problems.created", "advanced", created.Advanced())
		s.emitActivity(ctx, ActivityVerbCreated, created)
		return created, nil
	}

	existing.DisplayName = displayName
	existing.Markdown = markdown
	existing.XML = xml
	if metadata != nil {
		existing.Metadata = maps.Clone(metadata)
	}
	existing.UpdatedAt = now
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		logger.Error("problems.save.failed", "error", err)
		return nil, translateRepoError(err)
	}
	logger.Info("problems.updated", "advanced", updated.Advanced())
	s.emitActivity(ctx, ActivityVerbUpdated, updated)
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Problem, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return record, nil
}

func (s *service) GetByURLName(ctx context.Context, urlName string) (*Problem, error) {
	normalized, err := ResolveURLName(urlName, "")
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetByURLName(ctx, normalized)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return record, nil
}

func (s *service) List(ctx context.Context) ([]*Problem, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return translateRepoError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err)
	}
	logging.WithProblemContext(s.logger.WithContext(ctx), existing.URLName, "").Info("problems.deleted", "id", id.String())
	s.emitActivity(ctx, ActivityVerbDeleted, existing)
	return nil
}

// ResolveURLName returns the slug stored for a problem: urlName normalised,
// or displayName when urlName is blank.
func ResolveURLName(urlName, displayName string) (string, error) {
	candidate := strings.TrimSpace(urlName)
	if candidate == "" {
		candidate = strings.TrimSpace(displayName)
	}
	if candidate == "" {
		return "", ErrURLNameRequired
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil || normalized == "" {
		return "", ErrURLNameInvalid
	}
	return normalized, nil
}

func translateRepoError(err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return ErrProblemNotFound
	}
	return err
}
