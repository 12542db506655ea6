// Package presenter turns a weather record into the coloured text block shown
// to the user.
package presenter

import (
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

// Style is the colour category picked from the sky description.
type Style int

const (
	StylePlain Style = iota
	StyleWarm
	StyleCool
	StyleMuted
	StyleWet
)

func (s Style) String() string {
	switch s {
	case StyleWarm:
		return "warm"
	case StyleCool:
		return "cool"
	case StyleMuted:
		return "muted"
	case StyleWet:
		return "wet"
	default:
		return "plain"
	}
}

// Descriptions follow the OpenWeatherMap condition vocabulary. Anything not
// listed renders unstyled.
var descriptionStyles = map[string]Style{
	"clear sky": StyleWarm,

	"few clouds":       StyleCool,
	"scattered clouds": StyleCool,
	"broken clouds":    StyleCool,

	"overcast clouds": StyleMuted,
	"mist":            StyleMuted,
	"haze":            StyleMuted,
	"smoke":           StyleMuted,
	"fog":             StyleMuted,
	"sand":            StyleMuted,
	"dust":            StyleMuted,
	"squalls":         StyleMuted,

	"shower rain":  StyleWet,
	"rain":         StyleWet,
	"thunderstorm": StyleWet,
	"snow":         StyleWet,
	"tornado":      StyleWet,
}

var palette = map[Style]color.Style{
	StyleWarm:  color.New(color.FgLightYellow),
	StyleCool:  color.New(color.FgLightBlue),
	StyleMuted: color.New(color.OpFuzzy),
	StyleWet:   color.New(color.FgLightCyan),
}

var (
	headlineStyle = color.New(color.FgLightYellow, color.OpBold)
	promptStyle   = color.New(color.FgLightGreen)
	farewellStyle = color.New(color.FgLightYellow)
)

const (
	IconFreezing = "❄️"
	IconCold     = "🥶"
	IconMild     = "😊"
	IconWarm     = "🌞"
	IconHot      = "🔥"
)

// StyleFor maps a description to its colour category. Matching is exact.
func StyleFor(description string) Style {
	if s, ok := descriptionStyles[description]; ok {
		return s
	}
	return StylePlain
}

// TemperatureIcon picks the icon for a temperature in °C. Bands are
// half-open: [0,10) is cold, [10,20) mild, [20,30) warm.
func TemperatureIcon(celsius float64) string {
	switch {
	case celsius < 0:
		return IconFreezing
	case celsius < 10:
		return IconCold
	case celsius < 20:
		return IconMild
	case celsius < 30:
		return IconWarm
	default:
		return IconHot
	}
}

// Format renders the record without colour.
func Format(r models.WeatherRecord) string {
	return fmt.Sprintf("Weather in %s: %s %s\n"+
		"> Temperature: %.1f°C,\n"+
		"> Humidity: %.1f%%,\n"+
		"> Pressure: %.1f hPa,\n"+
		"> Wind Speed: %.1f m/s",
		r.LocationName,
		r.Description,
		TemperatureIcon(r.Temperature),
		r.Temperature,
		r.Humidity,
		r.Pressure,
		r.WindSpeed,
	)
}

type Presenter struct {
	colored bool
}

func New(colored bool) *Presenter {
	return &Presenter{colored: colored}
}

// Render returns the formatted block, coloured by StyleFor when enabled.
func (p *Presenter) Render(r models.WeatherRecord) string {
	return p.paint(palette[StyleFor(r.Description)], Format(r))
}

// Print writes the rendered block followed by a newline.
func (p *Presenter) Print(w io.Writer, r models.WeatherRecord) error {
	_, err := fmt.Fprintln(w, p.Render(r))
	return err
}

func (p *Presenter) Headline(text string) string {
	return p.paint(headlineStyle, text)
}

func (p *Presenter) Prompt(text string) string {
	return p.paint(promptStyle, text)
}

func (p *Presenter) Farewell(text string) string {
	return p.paint(farewellStyle, text)
}

func (p *Presenter) paint(style color.Style, text string) string {
	if !p.colored || len(style) == 0 {
		return text
	}
	return style.Sprint(text)
}
