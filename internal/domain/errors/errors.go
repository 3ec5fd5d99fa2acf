package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// 构建阶段的错误种类，任何一个都会中止整个构建
var (
	ErrMalformedMetadata   = errors.New("malformed metadata")
	ErrUnknownPlaceholder  = errors.New("unknown placeholder")
	ErrExpansionLimit      = errors.New("placeholder expansion limit exceeded")
	ErrMissingSourceFile   = errors.New("missing source file")
	ErrMissingTemplateFile = errors.New("missing template file")
	ErrOutputWrite         = errors.New("output write failure")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// BuildError names the file a build step failed on. Kind is one of the
// sentinel errors above; Err is the underlying cause and may be nil.
type BuildError struct {
	Path string
	Kind error
	Err  error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewBuildError(path string, kind, cause error) *BuildError {
	return &BuildError{Path: path, Kind: kind, Err: cause}
}

// WithPath attaches path to err. A BuildError that has no path yet gets this
// one; any other error is wrapped so the message still names the file.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var be *BuildError
	if errors.As(err, &be) {
		if be.Path == "" {
			be.Path = path
		}
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
