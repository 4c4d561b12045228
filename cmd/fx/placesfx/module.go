package placesfx

import (
	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/places"
	"github.com/poiesic/chowdown/places/google"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideSearcher)

func provideSearcher(cfg *config.Config) (places.Searcher, error) {
	return google.NewSearcher(cfg.PlacesAPIKey)
}
