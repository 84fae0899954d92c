package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
	"github.com/NikitaCOEUR/pipecomplete/internal/pipeline"
)

// Snapshot is an immutable, validated set of stage kinds
type Snapshot struct {
	kinds map[string]StageKind
	names []string
}

// EmptySnapshot returns a catalog with no stage kinds
func EmptySnapshot() *Snapshot {
	return &Snapshot{kinds: map[string]StageKind{}}
}

// NewSnapshot validates kinds and freezes them into a Snapshot.
// The input slice is copied; later changes to it are not observed.
func NewSnapshot(kinds []StageKind) (*Snapshot, error) {
	s := &Snapshot{
		kinds: make(map[string]StageKind, len(kinds)),
		names: make([]string, 0, len(kinds)),
	}

	for i, kind := range kinds {
		if err := validateKind(i, kind); err != nil {
			return nil, err
		}
		if _, exists := s.kinds[kind.Name]; exists {
			return nil, derrors.NewAlreadyExistsError(kind.Name, fmt.Sprintf("stage kind %q is declared more than once", kind.Name))
		}
		s.kinds[kind.Name] = kind.clone()
		s.names = append(s.names, kind.Name)
	}

	sort.Strings(s.names)
	return s, nil
}

func validateKind(index int, kind StageKind) error {
	if strings.TrimSpace(kind.Name) == "" {
		return derrors.NewValidationError(fmt.Sprintf("stages[%d].name", index), "stage name is empty", nil)
	}
	if strings.ContainsAny(kind.Name, " \t|=") {
		return derrors.NewValidationError(kind.Name, "stage name contains whitespace, '|' or '='", nil)
	}
	if strings.HasPrefix(kind.Name, pipeline.OptionMarker) {
		return derrors.NewValidationError(kind.Name, fmt.Sprintf("stage name starts with %q", pipeline.OptionMarker), nil)
	}

	seen := make(map[string]bool, len(kind.Options))
	for _, opt := range kind.Options {
		field := kind.Name + "/" + opt.Name
		if strings.TrimSpace(opt.Name) == "" {
			return derrors.NewValidationError(kind.Name, "option name is empty", nil)
		}
		if strings.ContainsAny(opt.Name, " \t|=") {
			return derrors.NewValidationError(field, "option name contains whitespace, '|' or '='", nil)
		}
		if seen[opt.Name] {
			return derrors.NewValidationError(field, fmt.Sprintf("option %q is declared more than once", opt.Name), nil)
		}
		seen[opt.Name] = true

		switch opt.Type {
		case TypeString, TypeNumber, TypeBoolean:
		case TypeEnum:
			if len(opt.AllowedValues) == 0 {
				return derrors.NewValidationError(field, "enum option declares no allowed values", nil)
			}
			if opt.HasDefault() && !lo.Contains(opt.AllowedValues, opt.Default) {
				return derrors.NewValidationError(field, fmt.Sprintf("default %q is not an allowed value", opt.Default), nil)
			}
		default:
			return derrors.NewValidationError(field, fmt.Sprintf("unknown value type %q", opt.Type), nil)
		}
	}
	return nil
}

// Lookup returns the stage kind registered under name
func (s *Snapshot) Lookup(name string) (StageKind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Names returns all stage names, sorted
func (s *Snapshot) Names() []string {
	return append([]string(nil), s.names...)
}

// Kinds returns all stage kinds ordered by name
func (s *Snapshot) Kinds() []StageKind {
	out := make([]StageKind, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.kinds[name])
	}
	return out
}

// WithPrefix returns the stage kinds whose name starts with prefix, ordered by name
func (s *Snapshot) WithPrefix(prefix string) []StageKind {
	start := sort.SearchStrings(s.names, prefix)
	var out []StageKind
	for _, name := range s.names[start:] {
		if !strings.HasPrefix(name, prefix) {
			break
		}
		out = append(out, s.kinds[name])
	}
	return out
}

// Search returns the stage kinds whose name fuzzy-matches query, best match first.
// An empty query returns every kind ordered by name.
func (s *Snapshot) Search(query string) []StageKind {
	if query == "" {
		return s.Kinds()
	}
	matches := fuzzy.Find(query, s.names)
	return lo.Map(matches, func(m fuzzy.Match, _ int) StageKind {
		return s.kinds[m.Str]
	})
}

// Len returns the number of stage kinds
func (s *Snapshot) Len() int {
	return len(s.names)
}
