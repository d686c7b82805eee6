package models

// FacilityCategory classifies a facility (mosque) record.
type FacilityCategory string

const (
	CategoryJummaah      FacilityCategory = "Jummaah"
	CategoryNeighborhood FacilityCategory = "Neighborhood"
	CategoryOther        FacilityCategory = "Other"
)

// FacilityCategories lists every category in dashboard order.
var FacilityCategories = []FacilityCategory{CategoryJummaah, CategoryNeighborhood, CategoryOther}

// PowerSupply is the facility's main power source.
type PowerSupply string

const (
	PowerGrid      PowerSupply = "Grid"
	PowerGenerator PowerSupply = "Generator"
	PowerSolar     PowerSupply = "Solar"
	PowerNone      PowerSupply = "None"
)

// WaterSupply is the facility's main water source.
type WaterSupply string

const (
	WaterTap      WaterSupply = "Tap"
	WaterBorehole WaterSupply = "Borehole"
	WaterWell     WaterSupply = "Well"
	WaterNone     WaterSupply = "None"
)

// PersonnelRole is the position a staff member holds.
type PersonnelRole string

const (
	RoleImam        PersonnelRole = "Imam"
	RoleMuadhin     PersonnelRole = "Muadhin"
	RoleChairperson PersonnelRole = "Chairperson"
	RoleTreasurer   PersonnelRole = "Treasurer"
	RoleSecretary   PersonnelRole = "Secretary"
)

// MadrasaType is the level of an attached madrasa.
type MadrasaType string

const (
	MadrasaPrimary   MadrasaType = "Primary"
	MadrasaSecondary MadrasaType = "Secondary"
	MadrasaIslamiya  MadrasaType = "Islamiya"
)

// Valid reports whether c is a known category.
func (c FacilityCategory) Valid() bool {
	switch c {
	case CategoryJummaah, CategoryNeighborhood, CategoryOther:
		return true
	}
	return false
}

// Valid reports whether p is empty or a known power source.
func (p PowerSupply) Valid() bool {
	switch p {
	case "", PowerGrid, PowerGenerator, PowerSolar, PowerNone:
		return true
	}
	return false
}

// Valid reports whether w is empty or a known water source.
func (w WaterSupply) Valid() bool {
	switch w {
	case "", WaterTap, WaterBorehole, WaterWell, WaterNone:
		return true
	}
	return false
}

// ContactPerson is the point of contact of a madrasa.
type ContactPerson struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

// Personnel is a staff member attached to a facility.
type Personnel struct {
	ID       string        `json:"id"`
	FullName string        `json:"fullName"`
	Phone    string        `json:"phone,omitempty"`
	Role     PersonnelRole `json:"role,omitempty"`
}

// Madrasa is a school attached to a facility.
type Madrasa struct {
	ContactPerson ContactPerson `json:"contactPerson"`
	Name          string        `json:"name"`
	Type          MadrasaType   `json:"type"`
	Address       string        `json:"address"`
	TotalStudents int           `json:"totalStudents"`
}

// FacilityRecord is one surveyed facility (mosque or similar institution).
type FacilityRecord struct {
	Latitude         *float64            `json:"latitude"`
	Longitude        *float64            `json:"longitude"`
	Capacity         *int                `json:"capacity,omitempty"`
	YearEstablished  *int                `json:"yearEstablished,omitempty"`
	NumberOfFloors   *int                `json:"numberOfFloors,omitempty"`
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	StreetAddress    string              `json:"streetAddress"`
	CityTown         string              `json:"cityTown"`
	LGA              string              `json:"lga"`
	State            string              `json:"state"`
	Category         FacilityCategory    `json:"category"`
	PowerSupply      PowerSupply         `json:"powerSupply,omitempty"`
	WaterSupply      WaterSupply         `json:"waterSupply,omitempty"`
	UploadedBy       string              `json:"uploadedBy"`
	CreatedAt        string              `json:"createdAt"`
	UpdatedAt        string              `json:"updatedAt"`
	Pictures         JSONList[string]    `json:"pictures"`
	Personnel        JSONList[Personnel] `json:"personnel"`
	Madrasas         JSONList[Madrasa]   `json:"madrasas"`
	AblutionArea     bool                `json:"ablutionArea"`
	ToiletFacilities bool                `json:"toiletFacilities"`
	ParkingSpace     bool                `json:"parkingSpace"`
	WomensPrayerArea bool                `json:"womensPrayerArea"`
	SecuritySystem   bool                `json:"securitySystem"`
	Published        bool                `json:"published"`
}

// FacilityDraft is a facility record as accumulated by the entry wizard.
type FacilityDraft struct {
	Latitude         *float64            `json:"latitude"`
	Longitude        *float64            `json:"longitude"`
	Capacity         *int                `json:"capacity,omitempty"`
	YearEstablished  *int                `json:"yearEstablished,omitempty"`
	NumberOfFloors   *int                `json:"numberOfFloors,omitempty"`
	Name             string              `json:"name"`
	StreetAddress    string              `json:"streetAddress"`
	CityTown         string              `json:"cityTown"`
	LGA              string              `json:"lga"`
	State            string              `json:"state"`
	Category         FacilityCategory    `json:"category"`
	PowerSupply      PowerSupply         `json:"powerSupply,omitempty"`
	WaterSupply      WaterSupply         `json:"waterSupply,omitempty"`
	UploadedBy       string              `json:"uploadedBy"`
	Pictures         JSONList[string]    `json:"pictures"`
	Personnel        JSONList[Personnel] `json:"personnel"`
	Madrasas         JSONList[Madrasa]   `json:"madrasas"`
	AblutionArea     bool                `json:"ablutionArea"`
	ToiletFacilities bool                `json:"toiletFacilities"`
	ParkingSpace     bool                `json:"parkingSpace"`
	WomensPrayerArea bool                `json:"womensPrayerArea"`
	SecuritySystem   bool                `json:"securitySystem"`
	Published        bool                `json:"published"`
}

// FacilityPatch is a partial update. Published is not patchable; it only
// changes through SetPublished.
type FacilityPatch struct {
	Name             *string              `json:"name,omitempty"`
	StreetAddress    *string              `json:"streetAddress,omitempty"`
	CityTown         *string              `json:"cityTown,omitempty"`
	LGA              *string              `json:"lga,omitempty"`
	State            *string              `json:"state,omitempty"`
	Latitude         *float64             `json:"latitude,omitempty"`
	Longitude        *float64             `json:"longitude,omitempty"`
	Category         *FacilityCategory    `json:"category,omitempty"`
	Capacity         *int                 `json:"capacity,omitempty"`
	YearEstablished  *int                 `json:"yearEstablished,omitempty"`
	NumberOfFloors   *int                 `json:"numberOfFloors,omitempty"`
	PowerSupply      *PowerSupply         `json:"powerSupply,omitempty"`
	WaterSupply      *WaterSupply         `json:"waterSupply,omitempty"`
	AblutionArea     *bool                `json:"ablutionArea,omitempty"`
	ToiletFacilities *bool                `json:"toiletFacilities,omitempty"`
	ParkingSpace     *bool                `json:"parkingSpace,omitempty"`
	WomensPrayerArea *bool                `json:"womensPrayerArea,omitempty"`
	SecuritySystem   *bool                `json:"securitySystem,omitempty"`
	Pictures         *JSONList[string]    `json:"pictures,omitempty"`
	Personnel        *JSONList[Personnel] `json:"personnel,omitempty"`
	Madrasas         *JSONList[Madrasa]   `json:"madrasas,omitempty"`
	UploadedBy       *string              `json:"uploadedBy,omitempty"`

	// Clear flags write NULL to the nullable columns and win over any value
	// set above. A nil field only means "leave unchanged".
	ClearCoordinates     bool `json:"clearCoordinates,omitempty"`
	ClearCapacity        bool `json:"clearCapacity,omitempty"`
	ClearYearEstablished bool `json:"clearYearEstablished,omitempty"`
	ClearNumberOfFloors  bool `json:"clearNumberOfFloors,omitempty"`
}

// Assignments returns the patched columns in table order.
func (p FacilityPatch) Assignments() []Assignment {
	var out []Assignment
	out = appendSet(out, "name", p.Name)
	out = appendSet(out, "streetAddress", p.StreetAddress)
	out = appendSet(out, "cityTown", p.CityTown)
	out = appendSet(out, "lga", p.LGA)
	out = appendSet(out, "state", p.State)
	out = appendNullable(out, "latitude", p.Latitude, p.ClearCoordinates)
	out = appendNullable(out, "longitude", p.Longitude, p.ClearCoordinates)
	out = appendText(out, "category", p.Category)
	out = appendFlag(out, "ablutionArea", p.AblutionArea)
	out = appendFlag(out, "toiletFacilities", p.ToiletFacilities)
	out = appendFlag(out, "parkingSpace", p.ParkingSpace)
	out = appendFlag(out, "womensPrayerArea", p.WomensPrayerArea)
	out = appendFlag(out, "securitySystem", p.SecuritySystem)
	out = appendSet(out, "pictures", p.Pictures)
	out = appendSet(out, "personnel", p.Personnel)
	out = appendSet(out, "madrasas", p.Madrasas)
	out = appendSet(out, "uploadedBy", p.UploadedBy)
	out = appendNullable(out, "capacity", p.Capacity, p.ClearCapacity)
	out = appendNullable(out, "yearEstablished", p.YearEstablished, p.ClearYearEstablished)
	out = appendNullable(out, "numberOfFloors", p.NumberOfFloors, p.ClearNumberOfFloors)
	out = appendText(out, "powerSupply", p.PowerSupply)
	out = appendText(out, "waterSupply", p.WaterSupply)
	return out
}

// appendFlag adds a boolean column as its 0/1 storage value.
func appendFlag(out []Assignment, column string, value *bool) []Assignment {
	if value == nil {
		return out
	}
	return append(out, Assignment{Column: column, Value: Flag(*value)})
}

// appendText adds a string-kinded enum column as plain text so the driver
// never sees the named type.
func appendText[T ~string](out []Assignment, column string, value *T) []Assignment {
	if value == nil {
		return out
	}
	return append(out, Assignment{Column: column, Value: string(*value)})
}
