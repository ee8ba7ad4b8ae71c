package processor

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshaler decodes recipe library file content based on the file extension.
type Unmarshaler struct {
	d   []byte
	ext string
}

// NewUnmarshaler creates a new Unmarshaler for the supplied data and extension.
func NewUnmarshaler(data []byte, ext string) Unmarshaler {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return Unmarshaler{
		d:   data,
		ext: ext,
	}
}

// Unmarshal decodes the data into dst.
func (u Unmarshaler) Unmarshal(dst any) error {
	switch strings.ToLower(u.ext) {
	case ".json":
		return unmarshalJSON(u.d, dst)
	case ".yaml", ".yml":
		return unmarshalYAML(u.d, dst)
	}

	return fmt.Errorf("unmarshaler.Unmarshal: unsupported extension: %s", u.ext)
}

func unmarshalJSON(data []byte, dst any) error {
	return json.Unmarshal(data, dst) //nolint:wrapcheck
}

func unmarshalYAML(data []byte, dst any) error {
	return yaml.Unmarshal(data, dst) //nolint:wrapcheck
}
