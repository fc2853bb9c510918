package loader

import (
	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}

func encodeTOML(config map[string]any) ([]byte, error) {
	return toml.Marshal(config)
}
