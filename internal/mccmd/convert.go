package mccmd

import "fmt"

// SetScore emits the command that stores src into dst: a direct set for
// literal values, a scoreboard operation for score-to-score moves.
func SetScore(dst Score, src Expression) Command {
	switch v := src.(type) {
	case Int:
		return Literalf("scoreboard players set %s %s", dst, v)
	case Score:
		return Literalf("scoreboard players operation %s = %s", dst, v)
	default:
		panic(fmt.Sprintf("unexpected expression type %T", src))
	}
}

// AddScore emits the command that adds src to dst in place.
func AddScore(dst Score, src Expression) Command {
	switch v := src.(type) {
	case Int:
		return Literalf("scoreboard players add %s %s", dst, v)
	case Score:
		return Literalf("scoreboard players operation %s += %s", dst, v)
	default:
		panic(fmt.Sprintf("unexpected expression type %T", src))
	}
}

// SubScore emits the command that subtracts src from dst in place.
func SubScore(dst Score, src Expression) Command {
	switch v := src.(type) {
	case Int:
		return Literalf("scoreboard players remove %s %s", dst, v)
	case Score:
		return Literalf("scoreboard players operation %s -= %s", dst, v)
	default:
		panic(fmt.Sprintf("unexpected expression type %T", src))
	}
}
