package presenter

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

var pune = models.WeatherRecord{
	Description:  "clear sky",
	Temperature:  25.3,
	Humidity:     60.0,
	Pressure:     1012.0,
	WindSpeed:    3.2,
	LocationName: "Pune",
}

func TestTemperatureIcon_Bands(t *testing.T) {
	tests := []struct {
		celsius float64
		want    string
	}{
		{-40, IconFreezing},
		{-0.1, IconFreezing},
		{0, IconCold},
		{9.9, IconCold},
		{10, IconMild},
		{19.9, IconMild},
		{20, IconWarm},
		{29.9, IconWarm},
		{30, IconHot},
		{45, IconHot},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.celsius, 'f', -1, 64), func(t *testing.T) {
			assert.Equal(t, tt.want, TemperatureIcon(tt.celsius))
		})
	}
}

func TestStyleFor(t *testing.T) {
	tests := map[Style][]string{
		StyleWarm:  {"clear sky"},
		StyleCool:  {"few clouds", "scattered clouds", "broken clouds"},
		StyleMuted: {"overcast clouds", "mist", "haze", "smoke", "fog", "sand", "dust", "squalls"},
		StyleWet:   {"shower rain", "rain", "thunderstorm", "snow", "tornado"},
		StylePlain: {"", "light rain", "Clear Sky", "drizzle", "volcanic ash"},
	}

	for want, descriptions := range tests {
		for _, d := range descriptions {
			t.Run(want.String()+"/"+d, func(t *testing.T) {
				assert.Equal(t, want, StyleFor(d))
			})
		}
	}
}

func TestFormat_Pune(t *testing.T) {
	out := Format(pune)

	for _, want := range []string{"Pune", "clear sky", "25.3", "60.0", "1012.0", "3.2", IconWarm} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, "Weather in Pune: clear sky "+IconWarm+"\n"+
		"> Temperature: 25.3°C,\n"+
		"> Humidity: 60.0%,\n"+
		"> Pressure: 1012.0 hPa,\n"+
		"> Wind Speed: 3.2 m/s", out)
}

func TestFormat_RoundTrip(t *testing.T) {
	records := []models.WeatherRecord{
		pune,
		{Description: "snow", Temperature: -12.04, Humidity: 87.25, Pressure: 998.96, WindSpeed: 0.05, LocationName: "Oslo"},
		{Description: "dust", Temperature: 41.0, Humidity: 5, Pressure: 1003.3, WindSpeed: 12.75, LocationName: "Dubai"},
	}

	number := regexp.MustCompile(`: (-?\d+\.\d)`)

	for _, r := range records {
		t.Run(r.LocationName, func(t *testing.T) {
			matches := number.FindAllStringSubmatch(Format(r), -1)
			require.Len(t, matches, 4)

			want := []float64{r.Temperature, r.Humidity, r.Pressure, r.WindSpeed}
			for i, m := range matches {
				got, err := strconv.ParseFloat(m[1], 64)
				require.NoError(t, err)
				assert.Equal(t, strconv.FormatFloat(want[i], 'f', 1, 64), strconv.FormatFloat(got, 'f', 1, 64))
			}
		})
	}
}

func TestPresenter_Print(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, New(false).Print(&buf, pune))
	assert.Equal(t, Format(pune)+"\n", buf.String())
}

func TestPresenter_RenderColored(t *testing.T) {
	old := color.Enable
	color.Enable = true
	prev := color.ForceColor()
	t.Cleanup(func() {
		color.Enable = old
		color.ForceSetColorLevel(prev)
	})

	out := New(true).Render(pune)
	assert.Contains(t, out, Format(pune))
	assert.NotEqual(t, Format(pune), out)
	assert.Equal(t, color.ClearCode(out), Format(pune))

	plain := New(true).Render(models.WeatherRecord{Description: "volcanic ash", LocationName: "Catania"})
	assert.Equal(t, Format(models.WeatherRecord{Description: "volcanic ash", LocationName: "Catania"}), plain)
}

func TestPresenter_NoColor(t *testing.T) {
	p := New(false)

	assert.Equal(t, Format(pune), p.Render(pune))
	assert.Equal(t, "Goodbye!", p.Farewell("Goodbye!"))
	assert.Equal(t, "Enter the city name:", p.Prompt("Enter the city name:"))
	assert.Equal(t, "Weather CLI", p.Headline("Weather CLI"))
}
