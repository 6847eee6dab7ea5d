package printer

import (
	"fmt"
	"strings"
)

// Heater identifies one of the printer's two heated zones.
type Heater string

const (
	HeaterHotend Heater = "hotend"
	HeaterBed    Heater = "bed"
)

// Temperature limits enforced before a request is issued. Commands outside
// these ranges are rejected with TemperatureRangeError rather than clamped,
// so a typo never reaches the firmware.
const (
	HotendMaxTemp = 300
	BedMaxTemp    = 120
	MinTemp       = 0
)

// ParseHeater maps user input to a Heater.
func ParseHeater(value string) (Heater, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hotend":
		return HeaterHotend, nil
	case "bed":
		return HeaterBed, nil
	default:
		return "", fmt.Errorf("unknown heater %q (want hotend or bed)", value)
	}
}

func (h Heater) maxTemp() int {
	if h == HeaterBed {
		return BedMaxTemp
	}
	return HotendMaxTemp
}

func validateTemperature(heater Heater, degrees int) error {
	if max := heater.maxTemp(); degrees < MinTemp || degrees > max {
		return &TemperatureRangeError{Heater: heater, Degrees: degrees, Min: MinTemp, Max: max}
	}
	return nil
}

// Material selects a preheat preset.
type Material string

const (
	MaterialPLA  Material = "PLA"
	MaterialPETG Material = "PETG"
	MaterialABS  Material = "ABS"
)

var preheatPresets = map[Material]struct{ hotend, bed int }{
	MaterialPLA:  {200, 60},
	MaterialPETG: {235, 80},
	MaterialABS:  {240, 100},
}

// ParseMaterial maps user input to a preheat Material.
func ParseMaterial(value string) (Material, error) {
	m := Material(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := preheatPresets[m]; !ok {
		return "", fmt.Errorf("unknown material %q (want PLA, PETG or ABS)", value)
	}
	return m, nil
}

// Targets returns the hotend and bed preset temperatures for the material.
func (m Material) Targets() (hotend, bed int) {
	p := preheatPresets[m]
	return p.hotend, p.bed
}

// SDAction names one of the SD card control operations.
type SDAction string

const (
	SDActionPrint  SDAction = "print"
	SDActionPause  SDAction = "pause"
	SDActionResume SDAction = "resume"
	SDActionStop   SDAction = "stop"
	SDActionInit   SDAction = "init"
)

func (a SDAction) valid() bool {
	switch a {
	case SDActionPrint, SDActionPause, SDActionResume, SDActionStop, SDActionInit:
		return true
	}
	return false
}

// Move describes a relative move. Nil axes are omitted from the request so
// the firmware can distinguish "move 0" from "leave this axis alone".
type Move struct {
	X        *float64
	Y        *float64
	Z        *float64
	Feedrate int
}

const defaultFeedrate = 3000

func (m Move) params() moveParams {
	feedrate := m.Feedrate
	if feedrate <= 0 {
		feedrate = defaultFeedrate
	}
	return moveParams{X: m.X, Y: m.Y, Z: m.Z, Feedrate: feedrate}
}

func (m Move) empty() bool {
	return m.X == nil && m.Y == nil && m.Z == nil
}
