package expect

import "fmt"

// PropertyMatcher is a predicate over an entry's properties.
type PropertyMatcher interface {
	Matches(props map[string]string) bool
	Describe() string
	propertyMatcher()
}

type hasProperty struct{ key, value string }

// HasProperty matches properties containing key with exactly value.
func HasProperty(key, value string) PropertyMatcher { return hasProperty{key: key, value: value} }

func (m hasProperty) Matches(props map[string]string) bool {
	v, ok := props[m.key]
	return ok && v == m.value
}
func (m hasProperty) Describe() string { return fmt.Sprintf("property %s=%q", m.key, m.value) }
func (hasProperty) propertyMatcher()   {}

type lacksKey struct{ key string }

// LacksKey matches properties without key.
func LacksKey(key string) PropertyMatcher { return lacksKey{key: key} }

func (m lacksKey) Matches(props map[string]string) bool {
	_, ok := props[m.key]
	return !ok
}
func (m lacksKey) Describe() string { return fmt.Sprintf("no property %s", m.key) }
func (lacksKey) propertyMatcher()   {}
