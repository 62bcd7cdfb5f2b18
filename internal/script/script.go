// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package script decodes YAML statement documents and replays them onto a
// sqlbuilder.Builder.
//
// A document names a dialect, a statement kind and an ordered list of steps.
// Each step is a single-key mapping from an operation to its arguments:
//
//	dialect: mysql
//	kind: select
//	params:
//	  name: O'Hara
//	steps:
//	  - select: [id, name]
//	  - from: users
//	  - where: [name, "${name}"]
//	  - limit: [10]
//
// Arguments are raw SQL fragments. A ${param} reference is replaced by the
// escaped literal of the matching params entry.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

var (
	// ErrUnknownOp is returned when a step names an operation that does not exist.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrArity is returned when a step carries the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrUnknownParam is returned for a ${param} reference with no params entry.
	ErrUnknownParam = errors.New("unknown parameter")
)

var paramRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Document is a single statement description.
type Document struct {
	// Dialect names the dialect to render for; empty defers to the caller
	Dialect string `yaml:"dialect,omitempty"`

	// Kind is the statement verb; empty means select
	Kind string `yaml:"kind,omitempty"`

	// Params are escaped by the dialect and substituted for ${name} references
	Params map[string]interface{} `yaml:"params,omitempty"`

	// Steps are replayed onto the builder in order
	Steps []Step `yaml:"steps"`
}

// Step is one builder operation and its arguments.
type Step struct {
	Op   string
	Args []string
}

// UnmarshalYAML accepts either a bare operation name or a single-key mapping
// whose value is a scalar argument or a list of arguments.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&s.Op)
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: a step holds exactly one operation", value.Line)
		}
		if err := value.Content[0].Decode(&s.Op); err != nil {
			return err
		}

		arg := value.Content[1]
		switch arg.Kind {
		case yaml.SequenceNode:
			return arg.Decode(&s.Args)
		case yaml.ScalarNode:
			if arg.ShortTag() == "!!null" {
				return nil
			}
			var v string
			if err := arg.Decode(&v); err != nil {
				return err
			}
			s.Args = []string{v}
			return nil
		}
		return fmt.Errorf("line %d: arguments of %q must be a scalar or a list", arg.Line, s.Op)
	}
	return fmt.Errorf("line %d: a step must be an operation name or a mapping", value.Line)
}

// MarshalYAML writes the step back in its mapping form.
func (s Step) MarshalYAML() (interface{}, error) {
	if len(s.Args) == 0 {
		return s.Op, nil
	}
	return map[string][]string{s.Op: s.Args}, nil
}

// Parse decodes every document of a YAML stream.
func Parse(r io.Reader) ([]*Document, error) {
	var docs []*Document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for {
		doc := &Document{}
		err := dec.Decode(doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding document %d", len(docs)+1)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, errors.New("script holds no documents")
	}
	return docs, nil
}

// Load reads and parses the script file at path.
func Load(path string) ([]*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %s", path)
	}
	return Parse(bytes.NewReader(data))
}

// StatementKind resolves the document kind, defaulting to select.
func (d *Document) StatementKind() (sqlbuilder.Kind, error) {
	if d.Kind == "" {
		return sqlbuilder.KindSelect, nil
	}
	return sqlbuilder.ParseKind(d.Kind)
}

// Apply replays the steps onto b. It stops at the first failing step.
func (d *Document) Apply(b *sqlbuilder.Builder) error {
	for i, step := range d.Steps {
		args, err := d.expand(b.Escaper(), step.Args)
		if err != nil {
			return errors.Wrapf(err, "step %d (%s)", i+1, step.Op)
		}
		if err := apply(b, step.Op, args); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i+1, step.Op)
		}
	}
	return nil
}

// Builder returns a fresh builder for dialect with the steps applied.
func (d *Document) Builder(dialect sqlbuilder.Dialect) (*sqlbuilder.Builder, error) {
	b := sqlbuilder.New(dialect)
	if err := d.Apply(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Render builds and renders the document for dialect.
func (d *Document) Render(dialect sqlbuilder.Dialect) (string, error) {
	kind, err := d.StatementKind()
	if err != nil {
		return "", err
	}

	b, err := d.Builder(dialect)
	if err != nil {
		return "", err
	}
	return b.SQL(kind)
}

func (d *Document) expand(e *sqlbuilder.Escaper, args []string) ([]string, error) {
	var missing error
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = paramRef.ReplaceAllStringFunc(arg, func(ref string) string {
			name := paramRef.FindStringSubmatch(ref)[1]
			value, ok := d.Params[name]
			if !ok {
				if missing == nil {
					missing = fmt.Errorf("%w: %s", ErrUnknownParam, name)
				}
				return ref
			}
			if list, ok := value.([]interface{}); ok {
				return e.EscapeList(list)
			}
			return e.NullOrValue(value)
		})
	}
	return out, missing
}
