package links

import (
	"net/url"
	"strings"

	"github.com/BearBump/DriverBox/internal/models"
)

const mapsDirURL = "https://www.google.com/maps/dir/"

// MapsURL opens turn-by-turn directions to the delivery address.
func MapsURL(d models.Delivery) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", d.Address+", "+d.City)
	return mapsDirURL + "?" + q.Encode()
}

// DialURL returns a tel: link, or false when the delivery has no phone.
func DialURL(d models.Delivery) (string, bool) {
	if d.Phone == nil {
		return "", false
	}
	var b strings.Builder
	for _, r := range *d.Phone {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return "tel:" + b.String(), true
}
