package report

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

var jsonOptions = ojg.Options{Indent: 2, Sort: true, HTMLUnsafe: true}

// JSON renders the dependency mapping with two-space indentation and
// sorted keys. A node without dependencies maps to an empty array.
func JSON(deps map[string][]string) []byte {
	data := make(map[string]any, len(deps))
	for file, d := range deps {
		list := make([]any, len(d))
		for i, s := range d {
			list[i] = s
		}
		data[file] = list
	}
	opts := jsonOptions
	return []byte(oj.JSON(data, &opts))
}
