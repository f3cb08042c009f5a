// Package openai implements the provider.openai module, a non-streaming
// client for the OpenAI Chat Completions API.
package openai

import (
	"log/slog"
	"net/http"

	"github.com/axtarget/axtarchat/internal/core"
	"github.com/axtarget/axtarchat/internal/provider"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Provider{})
}

// Compile-time interface guards.
var (
	_ provider.Provider      = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
	_ provider.ReadyChecker  = (*Provider)(nil)
	_ core.Module            = (*Provider)(nil)
	_ core.Configurable      = (*Provider)(nil)
	_ core.Provisioner       = (*Provider)(nil)
	_ core.Validator         = (*Provider)(nil)
)

// Provider implements the OpenAI Chat Completions API as an axtarchat
// provider module.
type Provider struct {
	config Config
	logger *slog.Logger
	client *http.Client
}

// ModuleInfo implements core.Module.
func (p *Provider) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "provider.openai",
		New: func() core.Module { return &Provider{} },
	}
}

// Configure implements core.Configurable.
func (p *Provider) Configure(node *yaml.Node) error {
	if err := node.Decode(&p.config); err != nil {
		return err
	}
	p.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (p *Provider) Provision(ctx *core.AppContext) error {
	p.config.defaults()
	p.logger = ctx.Logger
	p.client = &http.Client{Timeout: p.config.parsedTimeout()}

	if p.config.APIKey == "" {
		// Boot anyway: the chat pipeline reports this per request as a
		// configuration failure without consuming rate-limit quota.
		p.logger.Error("api_key is empty; completions will fail until it is set")
	}

	ctx.RegisterService("provider.openai", p)
	return nil
}

// Validate implements core.Validator.
func (p *Provider) Validate() error {
	if err := p.config.validateTimeout(); err != nil {
		return err
	}
	return nil
}

// Ready implements provider.ReadyChecker. It reports whether the module has
// the credential it needs to serve requests.
func (p *Provider) Ready() error {
	if p.config.APIKey == "" {
		return provider.ErrNotConfigured
	}
	return nil
}
