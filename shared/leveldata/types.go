// Package leveldata imports areas drawn in the Tiled map editor.
// Every polygon or rectangle object of the "sectors" object group becomes
// a sector; object properties carry the sector attributes.
package leveldata

import (
	"errors"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/sectormap/geometry"
)

// SectorsGroup is the object group sectors are read from.
const SectorsGroup = "sectors"

// ErrNoSectors is returned when a map has no sector objects.
var ErrNoSectors = errors.New("no sector objects")

// SectorProps are the attributes an object can set on its sector.
// Missing properties keep the sector defaults.
type SectorProps struct {
	Z               *float64
	Type            string
	Brightness      *int
	Tag             string
	Texture         string
	Hazards         []string
	Fade            bool
	IsBottomlessPit bool
}

func hasProp(props tiled.Properties, name string) bool {
	for _, p := range props {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ReadSectorProps collects the sector attributes of an object.
func ReadSectorProps(props tiled.Properties) SectorProps {
	var sp SectorProps
	if hasProp(props, "z") {
		z := props.GetFloat("z")
		sp.Z = &z
	}
	if hasProp(props, "brightness") {
		b := props.GetInt("brightness")
		sp.Brightness = &b
	}
	sp.Type = props.GetString("type")
	sp.Tag = props.GetString("tag")
	sp.Texture = props.GetString("texture")
	for _, h := range strings.Split(props.GetString("hazards"), ";") {
		if h = strings.TrimSpace(h); h != "" {
			sp.Hazards = append(sp.Hazards, h)
		}
	}
	sp.Fade = props.GetBool("fade")
	sp.IsBottomlessPit = props.GetBool("is_bottomless_pit")
	return sp
}

// Apply sets the attributes on s. It reports false when the type name is
// unknown; the sector then stays normal.
func (sp SectorProps) Apply(s *geometry.Sector) bool {
	known := true
	if sp.Type != "" {
		s.Type, known = geometry.ParseSectorType(sp.Type)
	}
	if sp.Z != nil {
		s.Z = *sp.Z
	}
	if sp.Brightness != nil {
		b := *sp.Brightness
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		s.Brightness = uint8(b)
	}
	s.Tag = sp.Tag
	s.Texture.Name = sp.Texture
	s.Hazards = append([]string(nil), sp.Hazards...)
	s.Fade = sp.Fade
	s.IsBottomlessPit = sp.IsBottomlessPit
	return known
}
