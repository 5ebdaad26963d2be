// Package validate checks user-supplied search input before any request
// goes out. All checks are synchronous and side-effect free; a rejection
// carries the exact message the surface shows inline.
package validate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/downlabs/citydash/pkg/models"
)

// Kind identifies which rule rejected the input.
type Kind int

const (
	EmptyInput Kind = iota
	NotNumeric
	NoFileSelected
	BadUnits
)

// Error is a pre-request input rejection.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether err is a rejection of the given kind.
func Is(err error, kind Kind) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == kind
}

// City returns the trimmed city name, rejecting empty input.
func City(raw string) (string, error) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return "", &Error{Kind: EmptyInput, Message: "Please enter a city name"}
	}
	return city, nil
}

// Coordinates parses a latitude/longitude pair. Ranges are not checked;
// out-of-bounds values pass through for the server to judge.
func Coordinates(rawLat, rawLon string) (float64, float64, error) {
	latText := strings.TrimSpace(rawLat)
	lonText := strings.TrimSpace(rawLon)
	if latText == "" || lonText == "" {
		return 0, 0, &Error{Kind: EmptyInput, Message: "Please enter both latitude and longitude"}
	}

	lat, latErr := strconv.ParseFloat(latText, 64)
	lon, lonErr := strconv.ParseFloat(lonText, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, &Error{Kind: NotNumeric, Message: "Please enter valid numeric coordinates"}
	}
	return lat, lon, nil
}

// File checks that an image path was given at all. Whether the file is
// readable only surfaces when the upload opens it.
func File(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "", &Error{Kind: NoFileSelected, Message: "Please select an image first"}
	}
	return path, nil
}

// Units checks against the vocabulary the weather service accepts. The
// message mirrors the server's own wording for the same rejection.
func Units(units string) error {
	switch units {
	case models.UnitsMetric, models.UnitsImperial, models.UnitsKelvin:
		return nil
	}
	return &Error{Kind: BadUnits, Message: "Units must be metric, imperial, or kelvin"}
}
