package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"formulang/internal/source"
)

// Suffix marks rule set files when scanning directories.
const Suffix = ".rules.yaml"

// Rule is one stored formula.
type Rule struct {
	Name        string
	Expr        string
	Description string

	Line     int // строка элемента списка в YAML
	ExprLine int // строка значения expr
}

// Set is a decoded rule set.
type Set struct {
	Name  string // имя файла без суффикса
	Path  string
	Rules []Rule
}

type setYAML struct {
	Rules []ruleYAML `yaml:"rules"`
}

type ruleYAML struct {
	Rule
	keys map[string]int // ключ -> строка, для проверки дубликатов/пустых
}

var ruleFields = map[string]bool{"name": true, "expr": true, "description": true}

func (r *ruleYAML) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return &Error{Line: n.Line, Column: n.Column, Message: "rule must be a mapping"}
	}
	r.Line = n.Line
	r.keys = make(map[string]int, 3)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if !ruleFields[key.Value] {
			return &Error{Line: key.Line, Column: key.Column, Message: fmt.Sprintf("unknown rule field %q", key.Value)}
		}
		if val.Kind != yaml.ScalarNode {
			return &Error{Line: val.Line, Column: val.Column, Message: fmt.Sprintf("field %q must be a string", key.Value)}
		}
		r.keys[key.Value] = key.Line
		switch key.Value {
		case "name":
			r.Name = val.Value
		case "expr":
			r.Expr = val.Value
			r.ExprLine = val.Line
		case "description":
			r.Description = val.Value
		}
	}
	return nil
}

// Load reads and validates the rule set at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	return Decode(path, data)
}

// Decode parses rule set YAML; path is used for naming and error locations.
// Validation problems are returned together via errors.Join.
func Decode(path string, data []byte) (*Set, error) {
	var doc setYAML
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, wrapYAMLError(path, err)
	}

	set := &Set{Name: setName(path), Path: path}
	var errs []error
	if len(doc.Rules) == 0 {
		errs = append(errs, &Error{Path: path, Message: "rule set has no rules"})
	}
	seen := make(map[string]int, len(doc.Rules))
	for _, ry := range doc.Rules {
		r := ry.Rule
		switch {
		case strings.TrimSpace(r.Name) == "":
			errs = append(errs, &Error{Path: path, Line: r.Line, Message: "rule name is required"})
		case strings.ContainsAny(r.Name, "#\n"):
			errs = append(errs, &Error{Path: path, Line: r.Line, Message: fmt.Sprintf("rule name %q must not contain '#' or newlines", r.Name)})
		default:
			if prev, dup := seen[r.Name]; dup {
				errs = append(errs, &Error{Path: path, Line: r.Line, Message: fmt.Sprintf("duplicate rule name %q (first defined on line %d)", r.Name, prev)})
			}
			seen[r.Name] = r.Line
		}
		if strings.TrimSpace(r.Expr) == "" {
			line := r.Line
			if l, ok := ry.keys["expr"]; ok {
				line = l
			}
			errs = append(errs, &Error{Path: path, Line: line, Message: fmt.Sprintf("rule %q has an empty expr", r.Name)})
		}
		set.Rules = append(set.Rules, r)
	}
	if len(errs) > 0 {
		return set, errors.Join(errs...)
	}
	return set, nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// wrapYAMLError достаёт номер строки из текста ошибки yaml.v3.
func wrapYAMLError(path string, err error) error {
	var located *Error
	if errors.As(err, &located) {
		located.Path = path
		return located
	}
	e := &Error{Path: path, Message: strings.TrimPrefix(err.Error(), "yaml: "), Cause: err}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		e.Line, _ = strconv.Atoi(m[1])
	}
	return e
}

func setName(path string) string {
	base := filepath.Base(path)
	for _, suf := range []string{Suffix, ".yaml", ".yml"} {
		if strings.HasSuffix(base, suf) {
			return strings.TrimSuffix(base, suf)
		}
	}
	return base
}

// VirtualName is the FileSet path of a rule: "<set path>#<rule>".
func (s *Set) VirtualName(r Rule) string {
	return s.Path + "#" + r.Name
}

// Lookup finds a rule by name.
func (s *Set) Lookup(name string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Entry binds a rule to its virtual file.
type Entry struct {
	Rule Rule
	File source.FileID
}

// AddTo registers each rule's expr as a virtual file of fs.
func (s *Set) AddTo(fs *source.FileSet) []Entry {
	out := make([]Entry, 0, len(s.Rules))
	for _, r := range s.Rules {
		id := fs.AddVirtual(s.VirtualName(r), []byte(r.Expr))
		out = append(out, Entry{Rule: r, File: id})
	}
	return out
}
