package zone

// Method names the step of zone resolution that produced a result.
type Method string

const (
	MethodPostal      Method = "postal"
	MethodDomestic    Method = "domestic"
	MethodCatalog     Method = "catalog"
	MethodOverride    Method = "override"
	MethodContinent   Method = "continent"
	MethodCoordinates Method = "coordinates"
	MethodFallback    Method = "fallback"
)

// Resolution is the outcome of resolving a destination to a zone. Exactly one
// zone code is always present; Warning is set when the resolver had to fall
// back because the input could not be interpreted.
type Resolution struct {
	Code    string   `json:"zoneCode"`
	Type    ZoneType `json:"zoneType"`
	Method  Method   `json:"method"`
	Matched string   `json:"matched,omitempty"`
	Warning string   `json:"warning,omitempty"`
}
