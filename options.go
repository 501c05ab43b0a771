package watttime

import (
	"net/url"
	"strconv"
	"time"
)

// Location is a geographic point used to query emissions data by coordinates
// instead of by balancing authority abbreviation
type Location struct {
	Latitude  float64
	Longitude float64
}

func (location Location) apply(params url.Values) {
	params.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
}

// Window is a closed time range. The zero value stands for no range at all;
// a window with only one bound set is invalid.
type Window struct {
	Start time.Time
	End   time.Time
}

func (window Window) isZero() bool {
	return window.Start.IsZero() && window.End.IsZero()
}

func (window Window) validate() *ValidationError {
	if window.Start.IsZero() != window.End.IsZero() {
		return errWindowIncomplete
	}
	return nil
}

func (window Window) apply(params url.Values) {
	if window.isZero() {
		return
	}
	params.Set("starttime", window.Start.Format(time.RFC3339))
	params.Set("endtime", window.End.Format(time.RFC3339))
}

// Style enumerates the units in which marginal emissions are reported
type Style string

const (
	StylePercent Style = "percent"
	StyleMOER    Style = "moer"
	StyleAll     Style = "all"
)

func (style Style) validate() *ValidationError {
	switch style {
	case "", StylePercent, StyleMOER, StyleAll:
		return nil
	}
	return errParamInvalidChoice("style", string(style), string(StylePercent), string(StyleMOER), string(StyleAll))
}

// MOERVersion selects the MOER model versions historical data is reported for
type MOERVersion string

const (
	MOERVersionLatest MOERVersion = "latest"
	MOERVersionAll    MOERVersion = "all"
)

func (version MOERVersion) validate() *ValidationError {
	switch version {
	case "", MOERVersionLatest, MOERVersionAll:
		return nil
	}
	return errParamInvalidChoice("moerversion", string(version), string(MOERVersionLatest), string(MOERVersionAll))
}

// IndexOptions parameterizes Session.Index.
// Exactly one of BA and Location has to be set.
type IndexOptions struct {
	BA       string
	Location *Location
	Style    Style
}

func (options IndexOptions) validate() *ValidationError {
	if options.BA != "" && options.Location != nil {
		return errParamsMutuallyExclusive("ba", "location")
	}
	if options.BA == "" && options.Location == nil {
		return errParamsOneRequired("ba", "location")
	}
	return options.Style.validate()
}

func (options IndexOptions) values() url.Values {
	params := url.Values{}
	if options.BA != "" {
		params.Set("ba", options.BA)
	}
	if options.Location != nil {
		options.Location.apply(params)
	}
	if options.Style != "" {
		params.Set("style", string(options.Style))
	}
	return params
}

// DataOptions parameterizes Session.Data.
// At most one of BA and Location may be set; the time window bounds the returned
// values and has to be either fully set or fully omitted.
type DataOptions struct {
	BA          string
	Location    *Location
	Window      Window
	Style       Style
	MOERVersion MOERVersion
}

func (options DataOptions) validate() *ValidationError {
	if options.BA != "" && options.Location != nil {
		return errParamsMutuallyExclusive("ba", "location")
	}
	if err := options.Window.validate(); err != nil {
		return err
	}
	if err := options.Style.validate(); err != nil {
		return err
	}
	return options.MOERVersion.validate()
}

func (options DataOptions) values() url.Values {
	params := url.Values{}
	if options.BA != "" {
		params.Set("ba", options.BA)
	}
	if options.Location != nil {
		options.Location.apply(params)
	}
	options.Window.apply(params)
	if options.Style != "" {
		params.Set("style", string(options.Style))
	}
	if options.MOERVersion != "" {
		params.Set("moerversion", string(options.MOERVersion))
	}
	return params
}

// HistoricalOptions parameterizes Session.HistoricalEmissions
type HistoricalOptions struct {
	MOERVersion MOERVersion
}

func (options HistoricalOptions) validate() *ValidationError {
	return options.MOERVersion.validate()
}

func (options HistoricalOptions) values() url.Values {
	params := url.Values{}
	if options.MOERVersion != "" {
		params.Set("version", string(options.MOERVersion))
	}
	return params
}

// ForecastOptions parameterizes Session.Forecast.
// Omitting the window requests the most recently generated forecast.
type ForecastOptions struct {
	Window           Window
	ExtendedForecast bool
}

func (options ForecastOptions) validate() *ValidationError {
	return options.Window.validate()
}

func (options ForecastOptions) values() url.Values {
	params := url.Values{}
	options.Window.apply(params)
	if options.ExtendedForecast {
		params.Set("extended_forecast", "true")
	}
	return params
}
