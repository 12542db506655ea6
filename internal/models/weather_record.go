package models

// WeatherRecord is the result of a single current-weather query.
// Values are passed through from the provider as-is, in metric units.
type WeatherRecord struct {
	Description  string  `json:"description"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	Pressure     float64 `json:"pressure"`
	WindSpeed    float64 `json:"wind_speed"`
	LocationName string  `json:"location_name"`
}
