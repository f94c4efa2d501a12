package kernel

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
)

// ServiceType is the delivery service level a shipment is priced for.
type ServiceType string

const (
	ServiceStandard  ServiceType = "standard"
	ServiceExpress   ServiceType = "express"
	ServiceOvernight ServiceType = "overnight"
	ServiceEconomy   ServiceType = "economy"
	ServicePremium   ServiceType = "premium"
)

var serviceTypes = []ServiceType{ServiceStandard, ServiceExpress, ServiceOvernight, ServiceEconomy, ServicePremium}

// AllServiceTypes returns every supported service level in a stable order.
func AllServiceTypes() []ServiceType {
	return append([]ServiceType(nil), serviceTypes...)
}

// ParseServiceType normalizes s and checks it is a supported service level.
func ParseServiceType(s string) (ServiceType, error) {
	candidate := ServiceType(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range serviceTypes {
		if st == candidate {
			return st, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("serviceType", fmt.Errorf("unsupported service type %q", s))
}

func (s ServiceType) String() string {
	return string(s)
}
