package main

import (
	"strings"
	"sync"

	"github.com/jonathanvineet/marlinctl/internal/config"
	"github.com/jonathanvineet/marlinctl/internal/printer"
	"github.com/jonathanvineet/marlinctl/internal/state"
)

// commandContext lazily builds the shared client and store so that every
// subcommand sees the same snapshot.
type commandContext struct {
	configFlag  *string
	printerFlag *string

	initOnce sync.Once
	cfg      config.Config
	store    *state.Store
	client   *printer.Client
	initErr  error
}

func newCommandContext(configFlag, printerFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		printerFlag: printerFlag,
	}
}

func (c *commandContext) init() error {
	c.initOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.initErr = err
			return
		}
		if c.printerFlag != nil && strings.TrimSpace(*c.printerFlag) != "" {
			cfg.PrinterURL = strings.TrimSpace(*c.printerFlag)
		}
		c.cfg = cfg

		c.store = state.NewStore()
		client, err := printer.NewClientWithTimeout(cfg.PrinterURL, c.store, cfg.RequestTimeout)
		if err != nil {
			c.initErr = err
			return
		}
		c.client = client
	})
	return c.initErr
}

func (c *commandContext) ensureClient() (*printer.Client, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.client, nil
}

func (c *commandContext) storeValue() *state.Store {
	_ = c.init()
	return c.store
}

func (c *commandContext) configValue() config.Config {
	_ = c.init()
	return c.cfg
}
