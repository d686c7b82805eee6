package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONList_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected JSONList[string]
		wantErr  bool
	}{
		{"nil", nil, JSONList[string]{}, false},
		{"empty string", "", JSONList[string]{}, false},
		{"empty bytes", []byte{}, JSONList[string]{}, false},
		{"json null", "null", JSONList[string]{}, false},
		{"empty array", "[]", JSONList[string]{}, false},
		{"string", `["imgA","imgB"]`, JSONList[string]{"imgA", "imgB"}, false},
		{"bytes", []byte(`["x"]`), JSONList[string]{"x"}, false},
		{"malformed", `["imgA"`, nil, true},
		{"wrong shape", `{"a":1}`, nil, true},
		{"unsupported type", int64(4), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l JSONList[string]
			err := l.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestJSONList_Value(t *testing.T) {
	var nilList JSONList[Personnel]
	v, err := nilList.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	people := JSONList[Personnel]{{ID: "1", FullName: "Sheikh Umar", Role: RoleImam}}
	v, err = people.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","fullName":"Sheikh Umar","role":"Imam"}]`, v.(string))
}

func TestJSONList_RoundTripNested(t *testing.T) {
	in := JSONList[Madrasa]{{
		Name:          "Nurul Huda",
		Type:          MadrasaPrimary,
		Address:       "Tudun Wada",
		TotalStudents: 80,
		ContactPerson: ContactPerson{Name: "Malam Sani", Position: "Head", Phone: "0803"},
	}}

	v, err := in.Value()
	require.NoError(t, err)

	var out JSONList[Madrasa]
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestJSONList_MarshalJSON_NilIsArray(t *testing.T) {
	rec := PropertyRecord{ID: "x"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pictures":[]`)
}

func TestFlag_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected Flag
		wantErr  bool
	}{
		{"nil", nil, false, false},
		{"zero", int64(0), false, false},
		{"one", int64(1), true, false},
		{"other non-zero", int64(7), true, false},
		{"bool", true, true, false},
		{"float", float64(1), true, false},
		{"text one", "1", true, false},
		{"text false", "false", false, false},
		{"bytes true", []byte("true"), true, false},
		{"bad text", "yes", false, true},
		{"unsupported", struct{}{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flag(!tt.expected)
			err := f.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFlag_Value(t *testing.T) {
	v, err := Flag(true).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = Flag(false).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestPropertyPatch_Assignments(t *testing.T) {
	assert.Empty(t, PropertyPatch{}.Assignments())

	name := "Musa"
	buildings := 2
	lat := 9.05
	patch := PropertyPatch{Latitude: &lat, Name: &name, NumberOfBuildings: &buildings}

	assert.Equal(t, []Assignment{
		{Column: "name", Value: "Musa"},
		{Column: "numberOfBuildings", Value: 2},
		{Column: "latitude", Value: 9.05},
	}, patch.Assignments())
}

func TestFacilityPatch_Assignments(t *testing.T) {
	assert.Empty(t, FacilityPatch{}.Assignments())

	category := CategoryNeighborhood
	parking := true
	power := PowerSolar
	patch := FacilityPatch{Category: &category, ParkingSpace: &parking, PowerSupply: &power}

	assert.Equal(t, []Assignment{
		{Column: "category", Value: "Neighborhood"},
		{Column: "parkingSpace", Value: Flag(true)},
		{Column: "powerSupply", Value: "Solar"},
	}, patch.Assignments())

	for _, a := range patch.Assignments() {
		assert.NotEqual(t, "published", a.Column)
	}
}

func TestPatch_ClearFlagsWriteNull(t *testing.T) {
	lat := 9.05
	property := PropertyPatch{Latitude: &lat, ClearCoordinates: true}
	assert.Equal(t, []Assignment{
		{Column: "latitude", Value: nil},
		{Column: "longitude", Value: nil},
	}, property.Assignments())

	floors := 3
	facility := FacilityPatch{NumberOfFloors: &floors, ClearCapacity: true, ClearNumberOfFloors: true}
	assert.Equal(t, []Assignment{
		{Column: "capacity", Value: nil},
		{Column: "numberOfFloors", Value: nil},
	}, facility.Assignments())
}

func TestEnums_Valid(t *testing.T) {
	for _, c := range FacilityCategories {
		assert.True(t, c.Valid())
	}
	assert.False(t, FacilityCategory("Cathedral").Valid())
	assert.False(t, FacilityCategory("").Valid())

	assert.True(t, PowerSupply("").Valid())
	assert.True(t, PowerGenerator.Valid())
	assert.False(t, PowerSupply("Wind").Valid())

	assert.True(t, WaterSupply("").Valid())
	assert.True(t, WaterWell.Valid())
	assert.False(t, WaterSupply("River").Valid())
}
