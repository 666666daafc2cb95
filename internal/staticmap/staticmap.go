// Package staticmap builds Google Static Maps image URLs showing the rider
// and, once a destination is picked, the straight route to it.
package staticmap

import (
	"errors"
	"net/url"
	"strconv"

	"ridehail/internal/domain/entities"
	"ridehail/internal/recommend"
)

// DefaultBaseURL is the Static Maps endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

var ErrMissingAPIKey = errors.New("static maps api key is not configured")

// Builder holds the image parameters shared by every URL.
type Builder struct {
	apiKey  string
	baseURL string

	Width   int
	Height  int
	Scale   int
	Zoom    int
	MapType string
}

// NewBuilder returns a Builder producing 800x600@2x roadmap images. An empty
// baseURL selects DefaultBaseURL.
func NewBuilder(apiKey, baseURL string) *Builder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Builder{
		apiKey:  apiKey,
		baseURL: baseURL,
		Width:   800,
		Height:  600,
		Scale:   2,
		Zoom:    14,
		MapType: "roadmap",
	}
}

// URL returns the image URL for the rider at user. A valid dest adds a green
// start marker, a red destination marker and a blue path between them, and
// lets the map fit both points instead of using a fixed zoom. A nil or
// invalid dest shows the rider alone.
func (b *Builder) URL(user entities.Location, dest *entities.Location) (string, error) {
	if b.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if !user.IsValid() {
		return "", recommend.ErrInvalidLocation
	}

	u := coord(user)
	params := url.Values{}
	params.Set("size", strconv.Itoa(b.Width)+"x"+strconv.Itoa(b.Height))
	params.Set("scale", strconv.Itoa(b.Scale))
	params.Set("maptype", b.MapType)

	if dest != nil && dest.IsValid() {
		d := coord(*dest)
		params.Add("markers", "color:green|label:S|"+u)
		params.Add("markers", "color:red|label:D|"+d)
		params.Set("path", "color:0x0000ff|weight:5|"+u+"|"+d)
	} else {
		params.Set("center", u)
		params.Set("zoom", strconv.Itoa(b.Zoom))
		params.Set("markers", "color:red|"+u)
	}

	params.Set("key", b.apiKey)
	return b.baseURL + "?" + params.Encode(), nil
}

func coord(l entities.Location) string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}
