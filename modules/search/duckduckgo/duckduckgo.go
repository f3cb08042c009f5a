// Package duckduckgo implements the search.duckduckgo module, a best-effort
// client for the DuckDuckGo Instant Answer API. It needs no API key.
package duckduckgo

import (
	"log/slog"
	"net/http"

	"github.com/axtarget/axtarchat/internal/core"
	"github.com/axtarget/axtarchat/internal/search"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ search.Searcher   = (*Module)(nil)
	_ core.Module       = (*Module)(nil)
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
)

// Module implements search.Searcher against the Instant Answer API.
type Module struct {
	config Config
	logger *slog.Logger
	client *http.Client
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "search.duckduckgo",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return err
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.logger = ctx.Logger
	m.client = &http.Client{Timeout: m.config.parsedTimeout()}

	ctx.RegisterService("search.duckduckgo", m)
	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	return m.config.validateTimeout()
}
