package domain

type HourlyPoint struct {
	Hour  string  `json:"hour"`
	Value float64 `json:"value"`
}

// HourlySeries es una serie horaria 9:00..23:00. Se genera en cada lectura, no se persiste.
type HourlySeries struct {
	Points []HourlyPoint `json:"points"`
}

func (s HourlySeries) Hours() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Hour
	}
	return out
}

func (s HourlySeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

type WeatherForecast struct {
	Hours       []string  `json:"hours"`
	Temperature []float64 `json:"temperature"`
	Humidity    []float64 `json:"humidity"`
}

type ResourceSavings struct {
	EnergyKWh    int `json:"energy_kwh"`
	StaffHours   int `json:"staff_hours"`
	WaterGallons int `json:"water_gallons"`
	EmissionsKg  int `json:"emissions_kg"`
}

type Insights struct {
	PeakHours       []string        `json:"peak_hours"`
	AverageTraffic  int             `json:"average_traffic"`
	MaxTraffic      int             `json:"max_traffic"`
	QuietHourCount  int             `json:"quiet_hour_count"`
	ResourceSavings ResourceSavings `json:"resource_savings"`
}

// VenueView es la decoracion de un Venue para mostrar; no se persiste.
type VenueView struct {
	Venue         Venue            `json:"venue"`
	Traffic       HourlySeries     `json:"traffic"`
	Forecast      *WeatherForecast `json:"forecast,omitempty"`
	Insights      Insights         `json:"insights"`
	RiskLevel     string           `json:"risk_level"`
	Accessibility string           `json:"accessibility"`
}
