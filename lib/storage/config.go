package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Config points to a storage backend; it is parsed from URL strings like
// `memory://` and `file:///var/lib/quadvote/db`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (config *Config, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(s); err != nil {
		return
	}

	switch parsed.Scheme {
	case "memory":
		config = &Config{Scheme: "memory"}
	case "file":
		var path string
		if path, err = filepath.Abs(filepath.Join(parsed.Host, parsed.Path)); err != nil {
			return
		}
		config = &Config{Scheme: "file", Path: path}
	default:
		err = fmt.Errorf("unsupported storage scheme, '%s'", parsed.Scheme)
	}

	return
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}
	return fmt.Sprintf("%s://%s", c.Scheme, c.Path)
}
