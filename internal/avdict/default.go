package avdict

import (
	_ "embed"
	"sync"
)

//go:embed data/avservices.json
var defaultData []byte

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the built-in dictionary. The embedded document is
// parsed once; a malformed embed is a build defect and panics.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Parse(defaultData)
		if err != nil {
			panic("avdict: embedded dictionary is malformed: " + err.Error())
		}
		defaultDict = d
	})
	return defaultDict
}
