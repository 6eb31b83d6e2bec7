// internal/workers/calculator/resolve-location-config/models.go
package resolvelocationconfig

import "solar-workers/internal/solar/location"

type Input struct {
	State            string `json:"state,omitempty"`
	City             string `json:"city,omitempty"`
	IncludeLocations bool   `json:"includeLocations,omitempty"`
}

type Output struct {
	LocationConfig location.Config     `json:"locationConfig"`
	LocationLevel  string              `json:"locationLevel"`
	ConfigSource   string              `json:"configSource"`
	UsedFallback   bool                `json:"usedFallback"`
	States         []location.Location `json:"states,omitempty"`
	Cities         []location.Location `json:"cities,omitempty"`
}
