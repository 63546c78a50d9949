// Package platform describes the short-video platforms an analysis can
// target. The platform name travels with the analyze request; the service
// uses its clip-length envelope when segmenting.
package platform

import (
	"fmt"
	"sort"
	"strings"
)

// Profile captures a platform's clip-length envelope in seconds.
type Profile struct {
	Name           string
	MinSeconds     int
	MaxSeconds     int
	OptimalSeconds int
}

var profiles = map[string]Profile{}

func register(p Profile) {
	profiles[strings.ToLower(p.Name)] = p
}

func init() {
	register(Profile{Name: "YouTube Shorts", MinSeconds: 15, MaxSeconds: 60, OptimalSeconds: 30})
	register(Profile{Name: "Instagram Reels", MinSeconds: 15, MaxSeconds: 90, OptimalSeconds: 30})
	register(Profile{Name: "TikTok", MinSeconds: 15, MaxSeconds: 180, OptimalSeconds: 45})
}

// Get returns the profile for name, matching case-insensitively.
func Get(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported platform %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the known platform names in stable order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
