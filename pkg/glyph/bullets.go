package glyph

import (
	"fmt"

	"tableflip.dev/ftf/pkg/week"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape     = "\x1b"
	resetCode  = 0
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

type Marker int

const (
	GoalBlock Marker = iota
	FreestyleBlock
	Completed
	Priority
	Evening
	Orphan
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		GoalBlock:      {Key: "g", Symbol: "●", Meaning: "goal block"},
		FreestyleBlock: {Key: "f", Symbol: "○", Meaning: "freestyle block"},
		Completed:      {Key: "x", Symbol: "✘", Meaning: "completed"},
		Priority:       {Key: "*", Symbol: "✷", Meaning: "day priority"},
		Evening:        {Key: "e", Symbol: "☾", Meaning: "evening block"},
		Orphan:         {Key: "?", Symbol: "?", Meaning: "goal was deleted"},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

func (m Marker) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Marker) String() string {
	return m.Glyph().String()
}

// ForBlock picks the marker of a block.
func ForBlock(t week.BlockType, completed, orphaned bool) Marker {
	switch {
	case completed:
		return Completed
	case orphaned:
		return Orphan
	case t == week.BlockGoal:
		return GoalBlock
	default:
		return FreestyleBlock
	}
}
