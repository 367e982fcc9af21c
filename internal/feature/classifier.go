package feature

import (
	"reflect"
	"slices"
)

// Rule maps every type assignable to Target onto a descriptor template.
type Rule struct {
	Target   reflect.Type
	Template Descriptor
}

// NewRule builds a rule for target. The template's Target is set to target.
func NewRule(target reflect.Type, groupName, summary, category string) Rule {
	return Rule{
		Target: target,
		Template: Descriptor{
			Target:    target,
			Enabled:   true,
			GroupName: groupName,
			Summary:   summary,
			Category:  category,
		},
	}
}

// Matches reports whether t is Target, assignable to it, or, for interface
// targets, implemented by t or *t.
func (r Rule) Matches(t reflect.Type) bool {
	if t == nil || r.Target == nil {
		return false
	}
	if t == r.Target || t.AssignableTo(r.Target) {
		return true
	}
	if r.Target.Kind() == reflect.Interface {
		return t.Implements(r.Target) || (t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(r.Target))
	}
	return false
}

// Classifier resolves descriptors from markers and an ordered rule table. It
// holds no mutable state after construction.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier that consults rules in the given order.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: slices.Clone(rules)}
}

// Classify returns the descriptor for t, or false when t is not documentable.
func (c *Classifier) Classify(t reflect.Type) (Descriptor, bool) {
	if a, ok := Marker(t); ok {
		return FromAnnotation(t, a), true
	}
	for _, r := range c.rules {
		if r.Matches(t) {
			return r.Template.BoundTo(t), true
		}
	}
	return Descriptor{}, false
}
