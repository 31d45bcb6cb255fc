// Package render turns catalog records into scene elements for the galaxy
// map and the per-system orbital view.
package render

import (
	"fmt"
	"net/url"
	"strings"
)

// View names a routable view.
type View int

const (
	ViewGalaxy View = iota
	ViewSystem
)

func (v View) String() string {
	switch v {
	case ViewGalaxy:
		return "galaxy"
	case ViewSystem:
		return "system"
	default:
		return "unknown"
	}
}

// GalaxyRoute is the route of the overview map.
const GalaxyRoute = "galaxy"

const systemPath = "system"

// SystemRoute returns the route of the system view for id. The id is the
// only navigation parameter.
func SystemRoute(id string) string {
	return systemPath + "?id=" + url.QueryEscape(id)
}

// Route is a parsed navigation target.
type Route struct {
	View View
	ID   string // system id; empty when absent
}

// ParseRoute parses a route produced by SystemRoute or GalaxyRoute.
// An empty route is the galaxy map.
func ParseRoute(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", raw, err)
	}

	switch strings.Trim(u.Path, "/") {
	case "", GalaxyRoute:
		return Route{View: ViewGalaxy}, nil
	case systemPath:
		return Route{View: ViewSystem, ID: u.Query().Get("id")}, nil
	default:
		return Route{}, fmt.Errorf("unknown route %q", raw)
	}
}

// String formats the route back into its raw form.
func (r Route) String() string {
	if r.View == ViewSystem {
		if r.ID == "" {
			return systemPath
		}
		return SystemRoute(r.ID)
	}
	return GalaxyRoute
}

// Navigator performs a full navigation to a route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}
