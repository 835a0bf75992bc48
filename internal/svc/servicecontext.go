// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"github.com/joeblew999/plat-webfonts/internal/config"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/history"
	"github.com/joeblew999/plat-webfonts/pkg/manifest"
	"github.com/joeblew999/plat-webfonts/pkg/preload"
)

type ServiceContext struct {
	Config   config.Config
	Catalog  *font.CatalogClient
	Registry *font.Registry
	Fonts    *manifest.Resolver
	Preload  *preload.Builder
	History  *history.Recorder
}

func NewServiceContext(c config.Config, catalog *font.CatalogClient, registry *font.Registry,
	fonts *manifest.Resolver, builder *preload.Builder, events *history.Recorder) *ServiceContext {
	return &ServiceContext{
		Config:   c,
		Catalog:  catalog,
		Registry: registry,
		Fonts:    fonts,
		Preload:  builder,
		History:  events,
	}
}
