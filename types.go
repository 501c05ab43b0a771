package watttime

import "encoding/json"

// Region describes the balancing authority (BA) serving a specific location
type Region struct {
	ID     int64  `json:"id,omitempty"`
	BA     string `json:"ba,omitempty"`
	Abbrev string `json:"abbrev,omitempty"`
	Name   string `json:"name,omitempty"`
}

// RegionAccess describes a single grid region together with the data access the
// authenticated account has to it
type RegionAccess struct {
	BA       string `json:"ba"`
	Name     string `json:"name,omitempty"`
	Access   bool   `json:"access,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// IndexData represents the real-time emissions index of a single grid region.
// The API reports the numeric values as strings.
type IndexData struct {
	BA        string `json:"ba"`
	Freq      string `json:"freq,omitempty"`
	Percent   string `json:"percent,omitempty"`
	MOER      string `json:"moer,omitempty"`
	PointTime string `json:"point_time,omitempty"`
}

// DataPoint represents a single historical marginal emissions value
type DataPoint struct {
	BA        string  `json:"ba"`
	Datatype  string  `json:"datatype,omitempty"`
	Frequency int     `json:"frequency,omitempty"`
	Market    string  `json:"market,omitempty"`
	PointTime string  `json:"point_time"`
	Value     float64 `json:"value"`
	Version   string  `json:"version,omitempty"`
}

// ForecastData represents one generated forecast of marginal emissions values
type ForecastData struct {
	GeneratedAt string           `json:"generated_at"`
	Forecast    []*ForecastPoint `json:"forecast"`
}

// ForecastPoint represents a single forecast marginal emissions value
type ForecastPoint struct {
	BA        string  `json:"ba,omitempty"`
	PointTime string  `json:"point_time"`
	Value     float64 `json:"value"`
	Version   string  `json:"version,omitempty"`
}

// forecastResponse accepts both response shapes of the forecast endpoint:
// a single forecast object (latest) or a list of them (historical window)
type forecastResponse []*ForecastData

func (response *forecastResponse) UnmarshalJSON(data []byte) error {
	for _, char := range data {
		switch char {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return json.Unmarshal(data, (*[]*ForecastData)(response))
		}
		break
	}
	single := new(ForecastData)
	if err := json.Unmarshal(data, single); err != nil {
		return err
	}
	*response = forecastResponse{single}
	return nil
}

// FeatureCollection represents the geojson boundary collection covering all grid regions
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Feature represents the boundary geometry of a single grid region.
// The multipolygon geometry is kept raw for the caller to decode with the GIS
// tooling of their choice.
type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
}
