package resources

import (
	"math"

	"augmentor/internal/augerr"
	"augmentor/internal/table"
)

// layout describes the letter rows of a keyboard; offsets shift each row
// to the right to model the physical stagger.
type layout struct {
	rows    []string
	offsets []float64
}

var layouts = map[Language]layout{
	Russian: {
		rows:    []string{"ёйцукенгшщзхъ", "фывапролджэ", "ячсмитьбю"},
		offsets: []float64{0, 1.25, 1.75},
	},
	English: {
		rows:    []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"},
		offsets: []float64{0, 0.25, 0.75},
	},
}

// Reach of a mistyped key: desktop keyboards let a finger slip diagonally,
// touch screens mostly slip sideways.
var neighbourRadius = map[Platform]float64{
	PC:     1.3,
	Mobile: 1.1,
}

type keyPoint struct {
	ch   rune
	x, y float64
}

func (l layout) keys() []keyPoint {
	var out []keyPoint
	for r, row := range l.rows {
		c := 0
		for _, ch := range row {
			out = append(out, keyPoint{ch: ch, x: float64(c) + l.offsets[r], y: float64(r)})
			c++
		}
	}
	return out
}

func keyDistance(a, b keyPoint) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx + dy*dy)
}

// TypoTable builds the adjacent-key table for a language and platform.
// Every key maps to its neighbours, equally weighted, in keyboard order.
func TypoTable(lang Language, platform Platform) (*table.Table, error) {
	l, ok := layouts[lang]
	if !ok {
		return nil, augerr.Configf("language", "no keyboard layout for %q", lang)
	}
	radius, ok := neighbourRadius[platform]
	if !ok {
		return nil, augerr.Configf("platform", "no neighbour radius for %q", platform)
	}
	keys := l.keys()
	rows := make(map[string]table.Row, len(keys))
	for _, k := range keys {
		var neighbours []string
		for _, o := range keys {
			if o.ch == k.ch {
				continue
			}
			if keyDistance(k, o) <= radius {
				neighbours = append(neighbours, string(o.ch))
			}
		}
		if len(neighbours) > 0 {
			rows[string(k.ch)] = table.Uniform(neighbours...)
		}
	}
	return table.New(rows)
}
