package adopters

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProfile = errors.New("invalid adopter profile")
)

// ExperienceLevel define la experiencia previa del adoptante.
// @Enum none, some, extensive
type ExperienceLevel string

const (
	ExperienceNone      ExperienceLevel = "none"
	ExperienceSome      ExperienceLevel = "some"
	ExperienceExtensive ExperienceLevel = "extensive"
)

// HomeEnvironment define el tipo de vivienda.
// @Enum apartment, house_with_yard, farm
type HomeEnvironment string

const (
	HomeApartment     HomeEnvironment = "apartment"
	HomeHouseWithYard HomeEnvironment = "house_with_yard"
	HomeFarm          HomeEnvironment = "farm"
)

// ActivityLevel define el nivel de actividad del hogar.
// @Enum low, moderate, high
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// AgeBand agrupa edades de menores en el hogar.
type AgeBand string

const (
	AgeBandToddler AgeBand = "0-5"
	AgeBandChild   AgeBand = "6-12"
	AgeBandTeen    AgeBand = "13-17"
)

// Profile es el perfil estructurado del adoptante.
// Llega ya extraído/validado por el colaborador de profiling;
// el core nunca parsea texto libre. Inmutable una vez adjuntado a una sesión.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	ExperienceLevel ExperienceLevel `json:"experience_level"`
	HomeEnvironment HomeEnvironment `json:"home_environment"`
	ActivityLevel   ActivityLevel   `json:"activity_level"`

	HasChildren  bool      `json:"has_children"`
	ChildrenAges []AgeBand `json:"children_ages,omitempty"`

	TimeAvailabilityHours float64 `json:"time_availability_hours_per_day"`
	HousingAllowsPets     bool    `json:"housing_allows_pets"`
}

// Validate aplica los invariantes del perfil: los tres campos
// ordinales/categóricos son obligatorios. Ausencia = error, no default.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProfile)
	}

	switch p.ExperienceLevel {
	case ExperienceNone, ExperienceSome, ExperienceExtensive:
	default:
		return fmt.Errorf("%w: experience_level %q is not one of none/some/extensive", ErrInvalidProfile, p.ExperienceLevel)
	}

	switch p.HomeEnvironment {
	case HomeApartment, HomeHouseWithYard, HomeFarm:
	default:
		return fmt.Errorf("%w: home_environment %q is not one of apartment/house_with_yard/farm", ErrInvalidProfile, p.HomeEnvironment)
	}

	switch p.ActivityLevel {
	case ActivityLow, ActivityModerate, ActivityHigh:
	default:
		return fmt.Errorf("%w: activity_level %q is not one of low/moderate/high", ErrInvalidProfile, p.ActivityLevel)
	}

	if p.TimeAvailabilityHours < 0 {
		return fmt.Errorf("%w: time_availability_hours_per_day must be >= 0", ErrInvalidProfile)
	}

	return nil
}

// Ordinal mapea el nivel de actividad a 1..3 (0 si no es reconocido).
func (a ActivityLevel) Ordinal() int {
	switch a {
	case ActivityLow:
		return 1
	case ActivityModerate:
		return 2
	case ActivityHigh:
		return 3
	default:
		return 0
	}
}

// Ordinal mapea la experiencia a 1..3 (0 si no es reconocida).
func (e ExperienceLevel) Ordinal() int {
	switch e {
	case ExperienceNone:
		return 1
	case ExperienceSome:
		return 2
	case ExperienceExtensive:
		return 3
	default:
		return 0
	}
}
