package controller

import (
	"fmt"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/session"
	"github.com/spf13/viper"
)

// FromConfig builds a controller from the current configuration. link may be
// empty, a bare id, a #fragment or a full link; a full link also selects the server.
func FromConfig(link string) (*Controller, error) {
	base := viper.GetString(key.ServerAddress)

	var loc nav.Location
	if link != "" {
		var err error
		if loc, err = nav.Parse(link, base); err != nil {
			return nil, err
		}
		base = loc.Base
	}

	client, err := catalog.New(base, catalog.WithSchema(catalog.Schema(viper.GetString(key.CatalogSchema))))
	if err != nil {
		return nil, err
	}

	var navOpts []nav.Option
	if viper.GetBool(key.NavigationRemember) {
		navOpts = append(navOpts, nav.WithStore(nav.NewStore()))
	}
	navigator := nav.New(client.Base(), navOpts...)
	if loc.Fragment != "" {
		navigator.SetFragment(loc.Fragment)
	}

	sink, engines, err := player.New(viper.GetString(key.Player))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key.Player, err)
	}

	sess := session.New(session.Config{
		Sink:      sink,
		Engines:   engines,
		SourceURL: client.SourceURL,
		Navigator: navigator,
	})

	return New(client, sess, listing.New(sess), navigator, Options{
		Refresh:  viper.GetDuration(key.CatalogRefreshInterval),
		Autoplay: viper.GetBool(key.PlayerAutoplay),
	}), nil
}
