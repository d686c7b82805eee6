package models

// PropertyRecord is one surveyed land parcel or building (land enumeration).
type PropertyRecord struct {
	Latitude          *float64         `json:"latitude"`
	Longitude         *float64         `json:"longitude"`
	ID                string           `json:"id"`
	Date              string           `json:"date"`
	PlotNumber        string           `json:"plotNumber"`
	Name              string           `json:"name"`
	Gender            string           `json:"gender"`
	MaritalStatus     string           `json:"maritalStatus"`
	DOB               string           `json:"dob"`
	Nationality       string           `json:"nationality"`
	StateOfOrigin     string           `json:"stateOfOrigin"`
	LGA               string           `json:"lga"`
	Email             string           `json:"email"`
	NIN               string           `json:"nin"`
	BVN               string           `json:"bvn"`
	PhoneNumber1      string           `json:"phoneNumber1"`
	PhoneNumber2      string           `json:"phoneNumber2"`
	LandSize          string           `json:"landSize"`
	LandUse           string           `json:"landUse"`
	LandPurpose       string           `json:"landPurpose"`
	PropertyType      string           `json:"propertyType"`
	PropertyOccupancy string           `json:"propertyOccupancy"`
	AccessAllowed     string           `json:"accessAllowed"`
	Street            string           `json:"street"`
	UploadedBy        string           `json:"uploadedBy"`
	CreatedAt         string           `json:"createdAt"`
	UpdatedAt         string           `json:"updatedAt"`
	Pictures          JSONList[string] `json:"pictures"`
	NumberOfBuildings int              `json:"numberOfBuildings"`
	NumberOfOccupants int              `json:"numberOfOccupants"`
}

// PropertyDraft is a property record as accumulated by the entry wizard,
// before an id and timestamps are assigned.
type PropertyDraft struct {
	Latitude          *float64         `json:"latitude"`
	Longitude         *float64         `json:"longitude"`
	Date              string           `json:"date"`
	PlotNumber        string           `json:"plotNumber"`
	Name              string           `json:"name"`
	Gender            string           `json:"gender"`
	MaritalStatus     string           `json:"maritalStatus"`
	DOB               string           `json:"dob"`
	Nationality       string           `json:"nationality"`
	StateOfOrigin     string           `json:"stateOfOrigin"`
	LGA               string           `json:"lga"`
	Email             string           `json:"email"`
	NIN               string           `json:"nin"`
	BVN               string           `json:"bvn"`
	PhoneNumber1      string           `json:"phoneNumber1"`
	PhoneNumber2      string           `json:"phoneNumber2"`
	LandSize          string           `json:"landSize"`
	LandUse           string           `json:"landUse"`
	LandPurpose       string           `json:"landPurpose"`
	PropertyType      string           `json:"propertyType"`
	PropertyOccupancy string           `json:"propertyOccupancy"`
	AccessAllowed     string           `json:"accessAllowed"`
	Street            string           `json:"street"`
	UploadedBy        string           `json:"uploadedBy"`
	Pictures          JSONList[string] `json:"pictures"`
	NumberOfBuildings int              `json:"numberOfBuildings"`
	NumberOfOccupants int              `json:"numberOfOccupants"`
}

// PropertyPatch is a partial update. Only non-nil fields are written.
type PropertyPatch struct {
	Date              *string           `json:"date,omitempty"`
	PlotNumber        *string           `json:"plotNumber,omitempty"`
	Name              *string           `json:"name,omitempty"`
	Gender            *string           `json:"gender,omitempty"`
	MaritalStatus     *string           `json:"maritalStatus,omitempty"`
	DOB               *string           `json:"dob,omitempty"`
	Nationality       *string           `json:"nationality,omitempty"`
	StateOfOrigin     *string           `json:"stateOfOrigin,omitempty"`
	LGA               *string           `json:"lga,omitempty"`
	Email             *string           `json:"email,omitempty"`
	NIN               *string           `json:"nin,omitempty"`
	BVN               *string           `json:"bvn,omitempty"`
	PhoneNumber1      *string           `json:"phoneNumber1,omitempty"`
	PhoneNumber2      *string           `json:"phoneNumber2,omitempty"`
	LandSize          *string           `json:"landSize,omitempty"`
	LandUse           *string           `json:"landUse,omitempty"`
	LandPurpose       *string           `json:"landPurpose,omitempty"`
	PropertyType      *string           `json:"propertyType,omitempty"`
	PropertyOccupancy *string           `json:"propertyOccupancy,omitempty"`
	AccessAllowed     *string           `json:"accessAllowed,omitempty"`
	NumberOfBuildings *int              `json:"numberOfBuildings,omitempty"`
	NumberOfOccupants *int              `json:"numberOfOccupants,omitempty"`
	Street            *string           `json:"street,omitempty"`
	Pictures          *JSONList[string] `json:"pictures,omitempty"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	UploadedBy        *string           `json:"uploadedBy,omitempty"`

	// ClearCoordinates writes NULL to latitude and longitude, overriding
	// any values set above. A nil field only means "leave unchanged".
	ClearCoordinates bool `json:"clearCoordinates,omitempty"`
}

// Assignment is one column = value pair of an UPDATE statement.
type Assignment struct {
	Column string
	Value  interface{}
}

// Assignments returns the patched columns in table order. Column names come
// from this fixed list only, never from caller input.
func (p PropertyPatch) Assignments() []Assignment {
	var out []Assignment
	out = appendSet(out, "date", p.Date)
	out = appendSet(out, "plotNumber", p.PlotNumber)
	out = appendSet(out, "name", p.Name)
	out = appendSet(out, "gender", p.Gender)
	out = appendSet(out, "maritalStatus", p.MaritalStatus)
	out = appendSet(out, "dob", p.DOB)
	out = appendSet(out, "nationality", p.Nationality)
	out = appendSet(out, "stateOfOrigin", p.StateOfOrigin)
	out = appendSet(out, "lga", p.LGA)
	out = appendSet(out, "email", p.Email)
	out = appendSet(out, "nin", p.NIN)
	out = appendSet(out, "bvn", p.BVN)
	out = appendSet(out, "phoneNumber1", p.PhoneNumber1)
	out = appendSet(out, "phoneNumber2", p.PhoneNumber2)
	out = appendSet(out, "landSize", p.LandSize)
	out = appendSet(out, "landUse", p.LandUse)
	out = appendSet(out, "landPurpose", p.LandPurpose)
	out = appendSet(out, "propertyType", p.PropertyType)
	out = appendSet(out, "propertyOccupancy", p.PropertyOccupancy)
	out = appendSet(out, "accessAllowed", p.AccessAllowed)
	out = appendSet(out, "numberOfBuildings", p.NumberOfBuildings)
	out = appendSet(out, "numberOfOccupants", p.NumberOfOccupants)
	out = appendSet(out, "street", p.Street)
	out = appendSet(out, "pictures", p.Pictures)
	out = appendNullable(out, "latitude", p.Latitude, p.ClearCoordinates)
	out = appendNullable(out, "longitude", p.Longitude, p.ClearCoordinates)
	out = appendSet(out, "uploadedBy", p.UploadedBy)
	return out
}

// appendSet adds column = *value when value is non-nil.
func appendSet[T any](out []Assignment, column string, value *T) []Assignment {
	if value == nil {
		return out
	}
	return append(out, Assignment{Column: column, Value: *value})
}

// appendNullable adds column = NULL when clear is set, otherwise behaves like
// appendSet.
func appendNullable[T any](out []Assignment, column string, value *T, clear bool) []Assignment {
	if clear {
		return append(out, Assignment{Column: column, Value: nil})
	}
	return appendSet(out, column, value)
}
