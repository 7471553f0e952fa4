package mccmd

import "github.com/packsmith/packsmith/internal/flatname"

// An Expression is a value the scoreboard can hold: a literal integer or
// another score. The set is closed; conversions switch over it exhaustively.
type Expression interface {
	exprNode()
}

// Int is a literal scoreboard value. Scoreboards store 32-bit integers.
type Int int32

func (Int) exprNode() {}

// A Score addresses one scoreboard slot: a holder (player name, fake player
// symbol or selector) paired with an objective. Both sides may be plain
// strings or symbols resolved at export time.
type Score struct {
	Holder    any
	Objective any
}

func NewScore(holder, objective any) Score {
	return Score{Holder: holder, Objective: objective}
}

func (Score) exprNode() {}

// resolve renders the "<holder> <objective>" pair most scoreboard commands
// expect.
func (s Score) resolve(r flatname.Resolver) (string, error) {
	holder, err := resolveArg(s.Holder, r)
	if err != nil {
		return "", err
	}
	objective, err := resolveArg(s.Objective, r)
	if err != nil {
		return "", err
	}
	return holder + " " + objective, nil
}
