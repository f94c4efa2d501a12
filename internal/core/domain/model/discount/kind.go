package discount

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
)

// Kind names a rule family. It is also the "type" of a breakdown entry.
type Kind string

const (
	KindAdjustment  Kind = "adjustment"
	KindContract    Kind = "contract"
	KindTiered      Kind = "tiered"
	KindPromotion   Kind = "promotion"
	KindSeasonal    Kind = "seasonal"
	KindVolume      Kind = "volume"
	KindProgressive Kind = "progressive"
)

var kinds = []Kind{KindAdjustment, KindContract, KindTiered, KindPromotion, KindSeasonal, KindVolume, KindProgressive}

// ParseKind normalizes s and checks it names a known rule family.
func ParseKind(s string) (Kind, error) {
	candidate := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range kinds {
		if k == candidate {
			return k, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown discount kind %q", s))
}

// Stage returns the engine stage the family is evaluated in.
func (k Kind) Stage() Stage {
	switch k {
	case KindAdjustment:
		return StageAdjustment
	case KindContract, KindTiered:
		return StageContract
	case KindPromotion:
		return StagePromotion
	case KindSeasonal:
		return StageSeasonal
	case KindVolume:
		return StageVolume
	case KindProgressive:
		return StageProgressive
	default:
		return 0
	}
}

func (k Kind) String() string {
	return string(k)
}

// Stage is a position in the fixed discount stacking order.
type Stage int

const (
	StageAdjustment Stage = iota + 1
	StageContract
	StagePromotion
	StageSeasonal
	StageVolume
	StageProgressive
)

// Stages returns every stage in evaluation order.
func Stages() []Stage {
	return []Stage{StageAdjustment, StageContract, StagePromotion, StageSeasonal, StageVolume, StageProgressive}
}

func (s Stage) String() string {
	switch s {
	case StageAdjustment:
		return "adjustment"
	case StageContract:
		return "contract"
	case StagePromotion:
		return "promotion"
	case StageSeasonal:
		return "seasonal"
	case StageVolume:
		return "volume"
	case StageProgressive:
		return "progressive"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}
