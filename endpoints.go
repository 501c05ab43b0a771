package watttime

import (
	"context"
	"net/url"
	"strconv"
)

// RegionFromLocation determines the grid region (balancing authority) serving the given
// coordinates. Coordinates outside of any covered region are reported by the server as an
// error body and surface as an APIError.
func (session *Session) RegionFromLocation(ctx context.Context, latitude, longitude float64) (*Region, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))

	region := new(Region)
	if err := session.getJSON(ctx, "/ba-from-loc", params, region); err != nil {
		return nil, err
	}
	return region, nil
}

// Regions lists the grid regions the authenticated account has data access to.
// If all is set, every region with data coverage is returned instead.
func (session *Session) Regions(ctx context.Context, all bool) ([]*RegionAccess, error) {
	params := url.Values{}
	if all {
		params.Set("all", "true")
	}

	var regions []*RegionAccess
	if err := session.getJSON(ctx, "/ba-access", params, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// Index returns the real-time emissions index for the grid region selected by the options
func (session *Session) Index(ctx context.Context, options IndexOptions) (*IndexData, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	data := new(IndexData)
	if err := session.getJSON(ctx, "/index", options.values(), data); err != nil {
		return nil, err
	}
	return data, nil
}

// Data returns historical marginal emissions values for the grid region selected by the options
func (session *Session) Data(ctx context.Context, options DataOptions) ([]*DataPoint, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	var points []*DataPoint
	if err := session.getJSON(ctx, "/data", options.values(), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// HistoricalEmissions downloads the zip archive of monthly CSV files holding the MOER
// values of the given grid region for up to the past two years.
// The raw archive payload is returned; saving, extraction and concatenation are provided
// by the archive package.
func (session *Session) HistoricalEmissions(ctx context.Context, ba string, options HistoricalOptions) ([]byte, error) {
	if ba == "" {
		return nil, errParamMissing("ba")
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	params := options.values()
	params.Set("ba", ba)
	return session.get(ctx, "/historical", params)
}

// Forecast obtains marginal emissions forecasts for the given grid region.
// Without a time window the most recently generated forecast is returned as a single
// element; with one, all forecasts generated within that window.
func (session *Session) Forecast(ctx context.Context, ba string, options ForecastOptions) ([]*ForecastData, error) {
	if ba == "" {
		return nil, errParamMissing("ba")
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	params := options.values()
	params.Set("ba", ba)

	var forecasts forecastResponse
	if err := session.getJSON(ctx, "/forecast", params, &forecasts); err != nil {
		return nil, err
	}
	return forecasts, nil
}

// RegionGeometry returns the geojson boundary collection of all covered grid regions
func (session *Session) RegionGeometry(ctx context.Context) (*FeatureCollection, error) {
	collection := new(FeatureCollection)
	if err := session.getJSON(ctx, "/maps", nil, collection); err != nil {
		return nil, err
	}
	return collection, nil
}
