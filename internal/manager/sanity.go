package manager

import (
	"net/url"
	"strings"

	"raind/pkg/types"
)

// SanityReport describes which backends this process can construct.
type SanityReport struct {
	LlamaBuilt       bool     `json:"llama_built"`
	ServerConfigured bool     `json:"server_configured"`
	ServerURL        string   `json:"server_url,omitempty"`
	Formats          []string `json:"loadable_formats"`
	Error            string   `json:"error,omitempty"`
}

// SanityCheck reports the runtime dependencies behind the default factories.
// It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck() SanityReport {
	return sanityCheck(m.backendCfg, llamaBuilt)
}

func sanityCheck(cfg BackendConfig, built bool) SanityReport {
	r := SanityReport{LlamaBuilt: built, Formats: []string{}}
	raw := strings.TrimSpace(cfg.ServerURL)
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			r.ServerURL = raw
			r.Error = "server_url is not an absolute URL"
		} else {
			r.ServerConfigured = true
			r.ServerURL = u.Redacted()
		}
	}
	for _, f := range types.FormatPriority {
		switch f {
		case types.FormatGGUF, types.FormatGGML:
			if built || r.ServerConfigured {
				r.Formats = append(r.Formats, string(f))
			}
		default:
			if r.ServerConfigured {
				r.Formats = append(r.Formats, string(f))
			}
		}
	}
	return r
}
