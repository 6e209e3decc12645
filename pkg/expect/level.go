package expect

import "github.com/getmockd/logcapture/pkg/logentry"

// LevelMatcher is a predicate over an entry's level.
type LevelMatcher interface {
	Matches(level logentry.Level) bool
	Describe() string
	levelMatcher()
}

type levelEqualTo struct{ level logentry.Level }

// LevelEqualTo matches exactly one level.
func LevelEqualTo(level logentry.Level) LevelMatcher { return levelEqualTo{level: level} }

func (m levelEqualTo) Matches(level logentry.Level) bool { return level == m.level }
func (m levelEqualTo) Describe() string                  { return m.level.String() }
func (levelEqualTo) levelMatcher()                       {}

type anyLevel struct{}

// AnyLevel matches every level.
func AnyLevel() LevelMatcher { return anyLevel{} }

func (anyLevel) Matches(logentry.Level) bool { return true }
func (anyLevel) Describe() string            { return "ANY" }
func (anyLevel) levelMatcher()               {}
