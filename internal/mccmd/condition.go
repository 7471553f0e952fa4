package mccmd

// A Condition is a boolean test fragment usable behind "execute if" and
// "execute unless". Fragment returns a %s-placeholder format plus its
// late-bound arguments; the dispatching command embeds both.
type Condition interface {
	Fragment() (format string, args []any)
}

type scoreMatches struct {
	score  Score
	ranges string
}

// ScoreMatches tests a score against a match range ("3", "1..", "0..5").
func ScoreMatches(score Score, ranges string) Condition {
	return scoreMatches{score: score, ranges: ranges}
}

func (c scoreMatches) Fragment() (string, []any) {
	return "score %s matches " + c.ranges, []any{c.score}
}

type scoreCompare struct {
	left  Score
	op    string
	right Score
}

// ScoreCompare tests two scores against each other with one of the
// comparison operators "<", "<=", "=", ">=" or ">".
func ScoreCompare(left Score, op string, right Score) Condition {
	return scoreCompare{left: left, op: op, right: right}
}

func (c scoreCompare) Fragment() (string, []any) {
	return "score %s " + c.op + " score %s", []any{c.left, c.right}
}

type literalCondition struct {
	format string
	args   []any
}

// Cond is the escape hatch for conditions the vocabulary does not cover,
// e.g. "entity @p[distance=..5]" or "block ~ ~-1 ~ minecraft:air".
func Cond(format string, args ...any) Condition {
	return literalCondition{format: format, args: args}
}

func (c literalCondition) Fragment() (string, []any) {
	return c.format, c.args
}
