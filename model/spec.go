package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sghaida/scopewire/fields"
)

var (
	// ErrInvalidSpec is the sentinel behind SpecError.
	ErrInvalidSpec = errors.New("model: invalid tree spec")

	// ErrSpecPanic is returned when spec loading panics internally
	// (malformed input reaching a code path that assumes shape).
	ErrSpecPanic = errors.New("model: panic while loading tree spec")
)

// SpecError collects everything wrong with a tree spec so authors can fix a
// file in one pass.
type SpecError struct{ Issues []string }

// Error implements the error interface.
func (e SpecError) Error() string {
	// Example: model: invalid tree spec: component "App": requirement 0 missing id; ...
	return "model: invalid tree spec: " + strings.Join(e.Issues, "; ")
}

// Unwrap makes errors.Is(err, ErrInvalidSpec) hold.
func (e SpecError) Unwrap() error { return ErrInvalidSpec }

// TreeSpec is the declarative input: a target package and the root
// component of the scope tree.
type TreeSpec struct {
	// Package is the Go package name of the generated output.
	Package string `json:"package"`

	// Root is the root component; children nest inside it.
	Root ComponentSpec `json:"root"`
}

// ComponentSpec declares one scope of the component tree.
type ComponentSpec struct {
	// Name is the scope identity and the generated type name. Unique
	// across the tree.
	Name string `json:"name"`

	// Requirements this component owns.
	Requirements []RequirementSpec `json:"requirements"`

	// Builder maps owned requirements to members of the component's
	// builder helper. Empty means the component has no builder.
	Builder []BuilderMemberSpec `json:"builder"`

	// Factory maps owned requirements to parameters of the component's
	// factory method. Empty means the component has no factory method.
	Factory []FactoryParamSpec `json:"factory"`

	// Base optionally names the base implementation this component
	// refines; its builder takes precedence over the component's own.
	Base *BaseSpec `json:"base"`

	// Uses lists requirement IDs owned by ancestors that this component's
	// initialization code reads.
	Uses []string `json:"uses"`

	// Children are the nested components.
	Children []ComponentSpec `json:"children"`
}

// RequirementSpec declares one requirement.
type RequirementSpec struct {
	// ID is the requirement identity, unique within the tree.
	ID string `json:"id"`

	// Kind is "dependency", "module" or "bound-instance".
	// Empty defaults to "dependency".
	Kind string `json:"kind"`

	// Type is the value type in the target language.
	Type string `json:"type"`

	// Var is the suggested member name. Empty defaults to the ID.
	Var string `json:"var"`
}

// BuilderMemberSpec maps a requirement to a builder member.
type BuilderMemberSpec struct {
	// Requirement is the owned requirement's ID.
	Requirement string `json:"requirement"`

	// Member is the builder member name. Empty defaults to the
	// requirement's var name.
	Member string `json:"member"`
}

// FactoryParamSpec maps a requirement to a factory method parameter.
type FactoryParamSpec struct {
	// Requirement is the owned requirement's ID.
	Requirement string `json:"requirement"`

	// Param is the parameter name. Empty defaults to the requirement's
	// var name.
	Param string `json:"param"`
}

// BaseSpec names a base implementation and its builder mapping.
type BaseSpec struct {
	// Name is the base implementation's scope name.
	Name string `json:"name"`

	// Builder maps requirements to the base builder's members.
	Builder []BuilderMemberSpec `json:"builder"`
}

// ParseKind maps a spec kind string to a fields.Kind.
func ParseKind(s string) (fields.Kind, error) {
	switch s {
	case "", "dependency":
		return fields.KindDependency, nil
	case "module":
		return fields.KindModule, nil
	case "bound-instance":
		return fields.KindBoundInstance, nil
	default:
		return 0, SpecError{Issues: []string{"unknown requirement kind " + strconv.Quote(s)}}
	}
}

// LoadTree parses and validates a JSON tree spec. Panics raised while
// loading are converted into errors wrapping ErrSpecPanic.
func LoadTree(raw []byte) (spec *TreeSpec, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			spec = nil
			err = fmt.Errorf("%w: %v", ErrSpecPanic, rec)
		}
	}()

	var s TreeSpec
	if uerr := json.Unmarshal(raw, &s); uerr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, uerr)
	}

	s.applyDefaults()
	if verr := s.validate(); verr != nil {
		return nil, verr
	}
	return &s, nil
}

// applyDefaults fills the documented fallbacks in place.
func (s *TreeSpec) applyDefaults() {
	var walk func(c *ComponentSpec)
	walk = func(c *ComponentSpec) {
		vars := make(map[string]string, len(c.Requirements))
		for i := range c.Requirements {
			req := &c.Requirements[i]
			if strings.TrimSpace(req.Var) == "" {
				req.Var = req.ID
			}
			vars[req.ID] = req.Var
		}
		for i := range c.Builder {
			if strings.TrimSpace(c.Builder[i].Member) == "" {
				c.Builder[i].Member = vars[c.Builder[i].Requirement]
			}
		}
		for i := range c.Factory {
			if strings.TrimSpace(c.Factory[i].Param) == "" {
				c.Factory[i].Param = vars[c.Factory[i].Requirement]
			}
		}
		if c.Base != nil {
			for i := range c.Base.Builder {
				if strings.TrimSpace(c.Base.Builder[i].Member) == "" {
					c.Base.Builder[i].Member = vars[c.Base.Builder[i].Requirement]
				}
			}
		}
		for i := range c.Children {
			walk(&c.Children[i])
		}
	}
	walk(&s.Root)
}

// validate checks the whole spec and reports every issue at once.
func (s *TreeSpec) validate() error {
	var issues []string
	report := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Package) == "" {
		report("missing package")
	}

	seenNames := map[string]bool{}
	seenIDs := map[string]bool{}

	var walk func(c *ComponentSpec, ancestors map[string]bool)
	walk = func(c *ComponentSpec, ancestors map[string]bool) {
		where := "component " + strconv.Quote(c.Name)

		if strings.TrimSpace(c.Name) == "" {
			report("component with empty name")
		} else if seenNames[c.Name] {
			report("duplicate component name %q", c.Name)
		}
		seenNames[c.Name] = true
		if c.Base != nil && strings.TrimSpace(c.Base.Name) == "" {
			report("%s: base with empty name", where)
		}

		owned := map[string]bool{}
		for i, req := range c.Requirements {
			if strings.TrimSpace(req.ID) == "" {
				report("%s: requirement %d missing id", where, i)
				continue
			}
			if owned[req.ID] || seenIDs[req.ID] {
				report("%s: duplicate requirement id %q", where, req.ID)
			}
			owned[req.ID] = true
			seenIDs[req.ID] = true
			if strings.TrimSpace(req.Type) == "" {
				report("%s: requirement %q missing type", where, req.ID)
			}
			if _, err := ParseKind(req.Kind); err != nil {
				report("%s: requirement %q has unknown kind %q", where, req.ID, req.Kind)
			}
		}

		checkMapping := func(what, id string, seen map[string]bool) {
			if !owned[id] {
				report("%s: %s references unknown requirement %q", where, what, id)
			}
			if seen[id] {
				report("%s: duplicate %s mapping for requirement %q", where, what, id)
			}
			seen[id] = true
		}
		builderSeen := map[string]bool{}
		for _, b := range c.Builder {
			checkMapping("builder", b.Requirement, builderSeen)
		}
		factorySeen := map[string]bool{}
		for _, f := range c.Factory {
			checkMapping("factory", f.Requirement, factorySeen)
		}
		if c.Base != nil {
			baseSeen := map[string]bool{}
			for _, b := range c.Base.Builder {
				checkMapping("base builder", b.Requirement, baseSeen)
			}
		}

		for _, id := range c.Uses {
			if !ancestors[id] {
				report("%s: uses %q which no ancestor owns", where, id)
			}
		}

		childAncestors := make(map[string]bool, len(ancestors)+len(owned))
		for id := range ancestors {
			childAncestors[id] = true
		}
		for id := range owned {
			childAncestors[id] = true
		}
		for i := range c.Children {
			walk(&c.Children[i], childAncestors)
		}
	}
	walk(&s.Root, map[string]bool{})

	if len(issues) > 0 {
		return SpecError{Issues: issues}
	}
	return nil
}
