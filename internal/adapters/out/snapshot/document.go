package snapshot

// Document is the serialized form of a snapshot, shared by the YAML file
// source and the PostgreSQL loader. Decimals travel as strings so that no
// value ever passes through a float.
type Document struct {
	Zones              []ZoneDoc         `yaml:"zones"              json:"zones"`
	Carriers           []CarrierDoc      `yaml:"carriers"           json:"carriers"`
	WeightRules        []WeightRuleDoc   `yaml:"weightRules"        json:"weightRules"`
	DiscountRules      []DiscountRuleDoc `yaml:"discountRules"      json:"discountRules"`
	AdditionalServices []ServiceDoc      `yaml:"additionalServices" json:"additionalServices"`
	Customers          []CustomerDoc     `yaml:"customers"          json:"customers"`
}

// ZoneDoc is a pricing zone. Postal ranges are "FROM..TO" pairs such as
// "00-001..05-999".
type ZoneDoc struct {
	Code         string   `yaml:"code"         json:"code"`
	Type         string   `yaml:"type"         json:"type"`
	Countries    []string `yaml:"countries"    json:"countries"`
	PostalRanges []string `yaml:"postalRanges" json:"postalRanges"`
	Active       *bool    `yaml:"active"       json:"active"`
	Priority     int      `yaml:"priority"     json:"priority"`
}

// CarrierDoc is a carrier capability profile.
type CarrierDoc struct {
	Code              string   `yaml:"code"              json:"code"`
	Name              string   `yaml:"name"              json:"name"`
	VolumetricDivisor string   `yaml:"volumetricDivisor" json:"volumetricDivisor"`
	MaxWeightKg       string   `yaml:"maxWeightKg"       json:"maxWeightKg"`
	MaxLongestSideCm  string   `yaml:"maxLongestSideCm"  json:"maxLongestSideCm"`
	MaxGirthCm        string   `yaml:"maxGirthCm"        json:"maxGirthCm"`
	Zones             []string `yaml:"zones"             json:"zones"`
	Services          []string `yaml:"services"          json:"services"`
	Currency          string   `yaml:"currency"          json:"currency"`
	Active            *bool    `yaml:"active"            json:"active"`
}

// WeightRuleDoc is one tariff band. An empty WeightTo is unbounded.
type WeightRuleDoc struct {
	ID            string `yaml:"id"            json:"id"`
	Carrier       string `yaml:"carrier"       json:"carrier"`
	Zone          string `yaml:"zone"          json:"zone"`
	Service       string `yaml:"service"       json:"service"`
	WeightFrom    string `yaml:"weightFrom"    json:"weightFrom"`
	WeightTo      string `yaml:"weightTo"      json:"weightTo"`
	Method        string `yaml:"method"        json:"method"`
	BaseRate      string `yaml:"baseRate"      json:"baseRate"`
	RatePerKg     string `yaml:"ratePerKg"     json:"ratePerKg"`
	ThresholdKg   string `yaml:"thresholdKg"   json:"thresholdKg"`
	MinimumCharge string `yaml:"minimumCharge" json:"minimumCharge"`
	Currency      string `yaml:"currency"      json:"currency"`
}

// DiscountRuleDoc is a discount rule. Kind selects which of the family
// specific fields are read. Dates are RFC 3339 timestamps or plain dates;
// a plain ValidUntil date covers the whole day.
type DiscountRuleDoc struct {
	ID            string   `yaml:"id"            json:"id"`
	Name          string   `yaml:"name"          json:"name"`
	Kind          string   `yaml:"kind"          json:"kind"`
	Active        *bool    `yaml:"active"        json:"active"`
	ValidFrom     string   `yaml:"validFrom"     json:"validFrom"`
	ValidUntil    string   `yaml:"validUntil"    json:"validUntil"`
	ServiceTypes  []string `yaml:"serviceTypes"  json:"serviceTypes"`
	Zones         []string `yaml:"zones"         json:"zones"`
	MinOrderValue string   `yaml:"minOrderValue" json:"minOrderValue"`
	Priority      int      `yaml:"priority"      json:"priority"`
	Condition     string   `yaml:"condition"     json:"condition"`

	SpecDoc `yaml:",inline"`
}

// SpecDoc holds the family specific fields of a discount rule. It is stored
// as a JSON column by the PostgreSQL loader.
type SpecDoc struct {
	// adjustment
	Trigger     string `yaml:"trigger,omitempty"     json:"trigger,omitempty"`
	ThresholdKg string `yaml:"thresholdKg,omitempty" json:"thresholdKg,omitempty"`
	ThresholdCm string `yaml:"thresholdCm,omitempty" json:"thresholdCm,omitempty"`

	// adjustment, contract
	Shape *ShapeDoc `yaml:"shape,omitempty" json:"shape,omitempty"`

	// contract
	CustomerID string `yaml:"customerId,omitempty" json:"customerId,omitempty"`

	// contract, tiered, progressive
	Tiers []TierDoc `yaml:"tiers,omitempty" json:"tiers,omitempty"`

	// volume
	VolumeTiers []VolumeTierDoc `yaml:"volumeTiers,omitempty" json:"volumeTiers,omitempty"`

	// promotion
	Promotion *PromotionDoc `yaml:"promotion,omitempty" json:"promotion,omitempty"`

	// seasonal
	Seasons map[string]string `yaml:"seasons,omitempty" json:"seasons,omitempty"`
}

// ShapeDoc is a discount value and its interpretation.
type ShapeDoc struct {
	Type  string `yaml:"type"  json:"type"`
	Value string `yaml:"value" json:"value"`
	Cap   string `yaml:"cap"   json:"cap,omitempty"`
}

// TierDoc is a threshold tier.
type TierDoc struct {
	Threshold string `yaml:"threshold" json:"threshold"`
	Percent   string `yaml:"percent"   json:"percent"`
}

// VolumeTierDoc is a monthly volume tier.
type VolumeTierDoc struct {
	MinOrders int    `yaml:"minOrders" json:"minOrders"`
	MinSpend  string `yaml:"minSpend"  json:"minSpend"`
	Percent   string `yaml:"percent"   json:"percent"`
}

// PromotionDoc is a campaign mechanic.
type PromotionDoc struct {
	Code                string `yaml:"code"                json:"code,omitempty"`
	Scope               string `yaml:"scope"               json:"scope,omitempty"`
	Type                string `yaml:"type"                json:"type"`
	Value               string `yaml:"value"               json:"value,omitempty"`
	BuyQuantity         int    `yaml:"buyQuantity"         json:"buyQuantity,omitempty"`
	GetQuantity         int    `yaml:"getQuantity"         json:"getQuantity,omitempty"`
	MaxDiscountPerOrder string `yaml:"maxDiscountPerOrder" json:"maxDiscountPerOrder,omitempty"`
}

// ServiceDoc is an additional service.
type ServiceDoc struct {
	Code      string `yaml:"code"      json:"code"`
	Name      string `yaml:"name"      json:"name"`
	Method    string `yaml:"method"    json:"method"`
	Amount    string `yaml:"amount"    json:"amount"`
	Percent   string `yaml:"percent"   json:"percent"`
	MinCharge string `yaml:"minCharge" json:"minCharge"`
	Currency  string `yaml:"currency"  json:"currency"`
}

// CustomerDoc is a customer snapshot.
type CustomerDoc struct {
	ID                string `yaml:"id"                json:"id"`
	Tier              string `yaml:"tier"              json:"tier"`
	MonthlyOrderCount int    `yaml:"monthlyOrderCount" json:"monthlyOrderCount"`
	MonthlySpend      string `yaml:"monthlySpend"      json:"monthlySpend"`
	LifetimeValue     string `yaml:"lifetimeValue"     json:"lifetimeValue"`
	IsFirstOrder      bool   `yaml:"isFirstOrder"      json:"isFirstOrder"`
}
