package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Proxy is one outbound proxy entry with optional basic auth.
type Proxy struct {
	URL      string `json:"url" yaml:"url"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// proxiesFile represents the structure of the proxies configuration file.
type proxiesFile struct {
	Proxies []Proxy `json:"proxies" yaml:"proxies"`
}

// AuthURL returns the proxy URL with credentials embedded, the form the
// HTTP transport expects.
func (p Proxy) AuthURL() (string, error) {
	u, err := url.Parse(strings.TrimSpace(p.URL))
	if err != nil {
		return "", fmt.Errorf("parse proxy url %q: %w", p.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("proxy url %q missing scheme or host", p.URL)
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u.String(), nil
}

// LoadProxies reads the proxy pool from a YAML file. An empty path means
// no proxies are configured and all requests go direct.
func LoadProxies(path string) ([]Proxy, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read proxies file: %w", err)
	}

	var file proxiesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode proxies file: %w", err)
	}
	if len(file.Proxies) == 0 {
		return nil, errors.New("proxies file contains no proxies entries")
	}

	out := make([]Proxy, 0, len(file.Proxies))
	for i, p := range file.Proxies {
		p.URL = strings.TrimSpace(p.URL)
		p.Username = strings.TrimSpace(p.Username)
		if p.URL == "" {
			return nil, fmt.Errorf("proxies[%d]: url is required", i)
		}
		if _, err := p.AuthURL(); err != nil {
			return nil, fmt.Errorf("proxies[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
