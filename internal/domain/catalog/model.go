package catalog

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// EnergyLevel define el nivel de energía del animal.
// @Enum low, moderate, high
type EnergyLevel string

const (
	EnergyLow      EnergyLevel = "low"
	EnergyModerate EnergyLevel = "moderate"
	EnergyHigh     EnergyLevel = "high"
)

// SizeCategory define el tamaño del animal.
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// SpaceRequirement define el espacio que necesita el animal.
// @Enum small, medium, large
type SpaceRequirement string

const (
	SpaceSmall  SpaceRequirement = "small"
	SpaceMedium SpaceRequirement = "medium"
	SpaceLarge  SpaceRequirement = "large"
)

// ChildCompat es booleano-o-desconocido: no todos los refugios
// saben cómo reacciona el animal con niños.
// @Enum yes, no, unknown
type ChildCompat string

const (
	ChildCompatYes     ChildCompat = "yes"
	ChildCompatNo      ChildCompat = "no"
	ChildCompatUnknown ChildCompat = "unknown"
)

// AdoptionStatus define el estado del animal en el catálogo.
// @Enum available, pending, adopted
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "available"
	StatusPending   AdoptionStatus = "pending"
	StatusAdopted   AdoptionStatus = "adopted"
)

// AnimalRecord es el registro de un animal tal como lo entrega
// el catálogo externo. Read-only para el core.
type AnimalRecord struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Species Species `json:"species"`
	Breed   string  `json:"breed,omitempty"`

	EnergyLevel      EnergyLevel      `json:"energy_level"`
	AgeMonths        int              `json:"age_months"`
	SizeCategory     SizeCategory     `json:"size_category,omitempty"`
	GoodWithChildren ChildCompat      `json:"good_with_children"`
	SpaceRequirement SpaceRequirement `json:"space_requirement"`
	SpecialNeeds     bool             `json:"special_needs"`

	AdoptionStatus AdoptionStatus `json:"adoption_status"`
}

// Ordinal mapea la energía a 1..3 (0 si no es reconocida).
func (e EnergyLevel) Ordinal() int {
	switch e {
	case EnergyLow:
		return 1
	case EnergyModerate:
		return 2
	case EnergyHigh:
		return 3
	default:
		return 0
	}
}
