// Package nav holds the navigation state: which stream the shareable location points at.
package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// PagePath is the path of the player location on the stream server.
const PagePath = "/stream"

// Location is a shareable player address. Fragment is the stream id, empty when none is selected.
type Location struct {
	Base     string `json:"base"`
	Fragment string `json:"fragment"`
}

// String formats the location as <base>/stream#<id>.
func (l Location) String() string {
	if l.Fragment == "" {
		return l.Base + PagePath
	}
	return l.Base + PagePath + "#" + l.Fragment
}

// Parse reads a pasted link, a bare #id or a bare id. Bare forms take base as their base.
func Parse(raw, base string) (Location, error) {
	raw = strings.TrimSpace(raw)
	base = strings.TrimRight(base, "/")

	switch {
	case raw == "":
		return Location{Base: base}, nil
	case strings.HasPrefix(raw, "#"):
		return Location{Base: base, Fragment: strings.TrimSpace(raw[1:])}, nil
	case !strings.Contains(raw, "://"):
		return Location{Base: base, Fragment: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse link: %w", err)
	}
	if u.Host == "" {
		return Location{}, fmt.Errorf("link %q has no host", raw)
	}

	path := strings.TrimSuffix(strings.TrimRight(u.Path, "/"), PagePath)
	return Location{
		Base:     u.Scheme + "://" + u.Host + path,
		Fragment: u.Fragment,
	}, nil
}
