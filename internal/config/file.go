package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultFile is looked up in the working directory when -config is not given.
const DefaultFile = ".htmlfmt.cue"

const schema = `
indentStyle?:   "tab" | "space"
indentSize?:    int & >0
maxLineLength?: int & >0
extensions?:    [...string]
`

type File struct {
	IndentStyle   string   `json:"indentStyle,omitempty"`
	IndentSize    int      `json:"indentSize,omitempty"`
	MaxLineLength int      `json:"maxLineLength,omitempty"`
	Extensions    []string `json:"extensions,omitempty"`
}

// LoadFile compiles a CUE config file and validates it against the schema.
func LoadFile(filePath string) (File, error) {
	var file File

	content, err := os.ReadFile(filePath)
	if err != nil {
		return file, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString("close({" + schema + "})")
	if err := schemaValue.Err(); err != nil {
		return file, err
	}

	value := ctx.CompileBytes(content, cue.Filename(filePath))
	if err := value.Err(); err != nil {
		return file, fmt.Errorf("config %s: %w", filePath, err)
	}

	value = schemaValue.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return file, fmt.Errorf("config %s: %w", filePath, err)
	}

	if err := value.Decode(&file); err != nil {
		return file, fmt.Errorf("config %s: %w", filePath, err)
	}
	return file, nil
}
