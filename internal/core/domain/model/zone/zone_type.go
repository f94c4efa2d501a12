package zone

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
)

// ZoneType classifies a pricing zone. The built-in zone codes share their
// names with the types.
type ZoneType string

const (
	TypeLocal    ZoneType = "local"
	TypeDomestic ZoneType = "domestic"
	TypeEUWest   ZoneType = "eu-west"
	TypeEUEast   ZoneType = "eu-east"
	TypeEurope   ZoneType = "europe"
	TypeWorld    ZoneType = "world"
)

// Built-in zone codes.
const (
	CodeLocal    = string(TypeLocal)
	CodeDomestic = string(TypeDomestic)
	CodeEUWest   = string(TypeEUWest)
	CodeEUEast   = string(TypeEUEast)
	CodeEurope   = string(TypeEurope)
	CodeWorld    = string(TypeWorld)
)

var zoneTypes = []ZoneType{TypeLocal, TypeDomestic, TypeEUWest, TypeEUEast, TypeEurope, TypeWorld}

// ParseZoneType normalizes s and checks it names a known zone type.
func ParseZoneType(s string) (ZoneType, error) {
	candidate := ZoneType(strings.ToLower(strings.TrimSpace(s)))
	for _, zt := range zoneTypes {
		if zt == candidate {
			return zt, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("zoneType", fmt.Errorf("unknown zone type %q", s))
}

func (t ZoneType) String() string {
	return string(t)
}
