package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultSplit is used when neither rule set declares a split expression.
var defaultSplit = regexp.MustCompile(" ")

// SubSpec is a single uncompiled substitution rule.
type SubSpec struct {
	From string
	To   string
}

// RuleSpec is the uncompiled form of a rule set, as it appears in the
// configuration document. Empty fields mean the stage is skipped.
type RuleSpec struct {
	Filter string
	Subs   []SubSpec
	Split  string
	Map    map[string]string
}

// SubRule is a compiled substitution.
type SubRule struct {
	From *regexp.Regexp
	To   string
}

// RuleSet is a compiled, immutable rule set.
type RuleSet struct {
	Filter *regexp.Regexp
	Subs   []SubRule
	Split  *regexp.Regexp
	Map    map[string]string
}

// Compile compiles a rule spec. A malformed regex in any stage is a
// configuration error; nothing is compiled lazily, so all pattern errors
// surface before file processing begins.
func Compile(spec RuleSpec) (*RuleSet, error) {
	rs := &RuleSet{}

	if spec.Filter != "" {
		re, err := regexp.Compile(spec.Filter)
		if err != nil {
			return nil, fmt.Errorf("compiling filter pattern: %w", err)
		}
		rs.Filter = re
	}

	for i, sub := range spec.Subs {
		re, err := regexp.Compile(sub.From)
		if err != nil {
			return nil, fmt.Errorf("compiling sub pattern %d: %w", i, err)
		}
		rs.Subs = append(rs.Subs, SubRule{From: re, To: sub.To})
	}

	if spec.Split != "" {
		re, err := regexp.Compile(spec.Split)
		if err != nil {
			return nil, fmt.Errorf("compiling split pattern: %w", err)
		}
		rs.Split = re
	}

	if len(spec.Map) > 0 {
		rs.Map = make(map[string]string, len(spec.Map))
		for k, v := range spec.Map {
			rs.Map[strings.ToLower(k)] = strings.ToLower(v)
		}
	}

	return rs, nil
}

// Chain runs the global rule set before the layer rule set. Either set may be
// nil, meaning no rules at that level.
type Chain struct {
	Global *RuleSet
	Layer  *RuleSet
}

// Apply runs the filter, sub, split and map stages over a filename (already
// stripped of its extension). It returns the resulting chunk sequence, or
// ok=false when either filter rejects the name.
//
// Chunks come back lower-cased: the map stage looks keys up case-insensitively
// and the identity grammar downstream is defined on lower case.
func (c Chain) Apply(name string) ([]string, bool) {
	if !matches(c.Global, name) || !matches(c.Layer, name) {
		return nil, false
	}

	s := name
	s = substitute(c.Global, s)
	s = substitute(c.Layer, s)

	split := defaultSplit
	if c.Global != nil && c.Global.Split != nil {
		split = c.Global.Split
	}
	if c.Layer != nil && c.Layer.Split != nil {
		split = c.Layer.Split
	}

	chunks := split.Split(s, -1)
	for i, chunk := range chunks {
		chunks[i] = c.mapChunk(chunk)
	}

	return chunks, true
}

func (c Chain) mapChunk(chunk string) string {
	out := strings.ToLower(chunk)
	if c.Global != nil {
		if v, ok := c.Global.Map[out]; ok {
			out = v
		}
	}
	if c.Layer != nil {
		if v, ok := c.Layer.Map[out]; ok {
			out = v
		}
	}

	return out
}

func matches(rs *RuleSet, name string) bool {
	if rs == nil || rs.Filter == nil {
		return true
	}

	return rs.Filter.MatchString(name)
}

func substitute(rs *RuleSet, s string) string {
	if rs == nil {
		return s
	}

	for _, sub := range rs.Subs {
		s = sub.From.ReplaceAllString(s, sub.To)
	}

	return s
}
