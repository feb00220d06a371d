package matching

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// TagOperator represents comparison operators for tag matching.
type TagOperator int

const (
	OpEqual TagOperator = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains // case-insensitive substring
	OpRegex
	OpSoundex // phonetic match for names
)

// operatorTokens lists criterion operators, longest first so that "<="
// is not read as "<".
var operatorTokens = []struct {
	token string
	op    TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"<>", OpNotEqual},
	{"!=", OpNotEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"=", OpEqual},
	{"~", OpRegex},
}

// PlayerTag is the pseudo tag that matches either White or Black.
const PlayerTag = "Player"

// TagCriterion is a single test of one tag.
type TagCriterion struct {
	Tag      string
	Value    string
	Operator TagOperator

	re      *regexp.Regexp
	soundex string
	lower   string
}

// TagMatcher selects games by their tags. By default every criterion must
// hold.
type TagMatcher struct {
	criteria []*TagCriterion
	matchAll bool
}

// NewTagMatcher creates a new tag matcher.
func NewTagMatcher() *TagMatcher {
	return &TagMatcher{matchAll: true}
}

// SetMatchAll sets whether all criteria must match (AND) or any (OR).
func (tm *TagMatcher) SetMatchAll(all bool) {
	tm.matchAll = all
}

// AddCriterion adds a test of tag against value.
func (tm *TagMatcher) AddCriterion(tag, value string, op TagOperator) error {
	c := &TagCriterion{Tag: tag, Value: value, Operator: op}
	switch op {
	case OpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "tag %s pattern %q: %v", tag, value, err)
		}
		c.re = re
	case OpSoundex:
		c.soundex = Soundex(value)
	case OpContains:
		c.lower = strings.ToLower(value)
	}
	tm.criteria = append(tm.criteria, c)
	return nil
}

// AddPlayer adds a criterion matching a name in either the White or the
// Black tag, by substring or, with soundex, phonetically.
func (tm *TagMatcher) AddPlayer(name string, soundex bool) {
	op := OpContains
	if soundex {
		op = OpSoundex
	}
	_ = tm.AddCriterion(PlayerTag, name, op)
}

// ParseCriterion adds a criterion written as a tag name, an optional
// operator and a value, e.g. `White "Fischer"`, `Date >= "1970.01.01"` or
// `Event ~ "^World"`. Blank lines and lines starting with '#' are ignored.
func (tm *TagMatcher) ParseCriterion(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	end := strings.IndexAny(line, " \t<>=!~")
	if end <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "tag criterion %q has no value", line)
	}
	tag := line[:end]
	rest := strings.TrimSpace(line[end:])

	op := OpEqual
	for _, t := range operatorTokens {
		if after, ok := strings.CutPrefix(rest, t.token); ok {
			op, rest = t.op, strings.TrimSpace(after)
			break
		}
	}
	if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
		rest = rest[1 : len(rest)-1]
	}
	return tm.AddCriterion(tag, rest, op)
}

// Match implements GameMatcher. A matcher without criteria matches every
// game.
func (tm *TagMatcher) Match(_ *game.Game, tags map[string]string) bool {
	if len(tm.criteria) == 0 {
		return true
	}
	for _, c := range tm.criteria {
		if c.matches(tags) != tm.matchAll {
			return !tm.matchAll
		}
	}
	return tm.matchAll
}

// Name implements GameMatcher.
func (tm *TagMatcher) Name() string {
	return "tags(" + strconv.Itoa(len(tm.criteria)) + ")"
}

// Len returns the number of criteria.
func (tm *TagMatcher) Len() int {
	return len(tm.criteria)
}

func (c *TagCriterion) matches(tags map[string]string) bool {
	if c.Tag == PlayerTag {
		return c.matchValue(tags["White"]) || c.matchValue(tags["Black"])
	}
	value, ok := tags[c.Tag]
	if !ok {
		// Only != holds for a missing tag
		return c.Operator == OpNotEqual
	}
	return c.matchValue(value)
}

func (c *TagCriterion) matchValue(value string) bool {
	switch c.Operator {
	case OpEqual:
		return strings.EqualFold(value, c.Value)
	case OpNotEqual:
		return !strings.EqualFold(value, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(value), c.lower)
	case OpRegex:
		return c.re != nil && c.re.MatchString(value)
	case OpSoundex:
		return Soundex(value) == c.soundex
	}

	order := compareValues(value, c.Value)
	switch c.Operator {
	case OpLessThan:
		return order < 0
	case OpLessOrEqual:
		return order <= 0
	case OpGreaterThan:
		return order > 0
	case OpGreaterOrEqual:
		return order >= 0
	}
	return false
}

// compareValues orders two tag values as PGN dates when both are dates,
// as numbers when both are numbers, and case-insensitively otherwise.
func compareValues(a, b string) int {
	if da, db := parseDate(a), parseDate(b); da > 0 && db > 0 {
		return cmp.Compare(da, db)
	}
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// parseDate encodes a YYYY.MM.DD date, where month and day may be unknown
// ("??"), as YYYYMMDD. It returns 0 for anything that is not a date.
func parseDate(s string) int {
	if !strings.Contains(s, ".") {
		return 0
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year < 100 || year > 3000 {
		return 0
	}
	field := func(i, max int) int {
		if i >= len(parts) {
			return 1
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 1 || n > max {
			return 1
		}
		return n
	}
	return year*10000 + field(1, 12)*100 + field(2, 31)
}
