// Package httpclient installs a shared HTTP client into a postboard App as
// the "http" global property.
package httpclient

import (
	"context"

	hc "github.com/bft-labs/postboard/pkg/httpclient"
	"github.com/bft-labs/postboard/pkg/postboard"
)

// Name is the plugin identifier.
const Name = "httpclient"

// GlobalKey is the app global the client is installed under.
const GlobalKey = "http"

// Plugin sets the configured client as an app global.
type Plugin struct {
	client *hc.Client
	cfg    hc.Config
}

// New creates the plugin around an already configured client. A nil client
// is built from hc.DefaultConfig at install time.
func New(client *hc.Client) *Plugin {
	return &Plugin{client: client, cfg: hc.DefaultConfig()}
}

// NewWithConfig creates the plugin with a client built from cfg at install
// time, tagged with the app's logger and instance id.
func NewWithConfig(cfg hc.Config) *Plugin {
	return &Plugin{cfg: cfg}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string { return Name }

// Install sets the client as the app global GlobalKey. A client without an
// instance id is tagged with the app's id.
func (p *Plugin) Install(ctx context.Context, app *postboard.App) error {
	if p.client == nil {
		p.client = hc.New(p.cfg, hc.WithLogger(app.Logger()))
	}
	if p.client.InstanceID() == "" {
		p.client.SetInstanceID(app.ID())
	}
	app.SetGlobal(GlobalKey, p.client)
	return nil
}

// Shutdown releases idle connections.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.client != nil {
		p.client.CloseIdleConnections()
	}
	return nil
}

// Client returns the installed client, or nil before Install.
func (p *Plugin) Client() *hc.Client {
	return p.client
}

// ClientFrom returns the client installed on app by this plugin.
func ClientFrom(app *postboard.App) (*hc.Client, bool) {
	v, ok := app.Global(GlobalKey)
	if !ok {
		return nil, false
	}
	c, ok := v.(*hc.Client)
	return c, ok
}

// Ensure Plugin implements postboard.Plugin.
var _ postboard.Plugin = (*Plugin)(nil)
