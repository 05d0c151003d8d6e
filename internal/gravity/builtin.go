package gravity

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed data/*.gfc
var builtinFS embed.FS

var builtinFiles = map[string]string{
	"egm96-4": "data/egm96_4.gfc",
}

// Builtin parses one of the coefficient tables compiled into the binary.
func Builtin(name string) (*Model, error) {
	file, ok := builtinFiles[name]
	if !ok {
		return nil, fmt.Errorf("gravity: unknown builtin model %q", name)
	}
	data, err := builtinFS.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// BuiltinNames lists the embedded models in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinFiles))
	for name := range builtinFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
