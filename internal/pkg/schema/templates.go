package schema

// Column names shared by the import pipeline and the export serializer. The
// exporter's templates and the importer's header check both derive from the
// schemas below, so the two can never drift apart.
const (
	ColBuildingName      = "Building Name"
	ColAddressLine1      = "Address Line 1"
	ColAddressLine2      = "Address Line 2"
	ColCity              = "City"
	ColPostcode          = "Postcode"
	ColBuildingType      = "Building Type"
	ColStoreyCount       = "Storey Count"
	ColTopStoreyHeight   = "Top Storey Height (m)"
	ColContactName       = "Contact Name"
	ColContactPhone      = "Contact Phone"
	ColDoorNumber        = "Door Number"
	ColDoorLocation      = "Location"
	ColDoorType          = "Door Type"
	ColFireRating        = "Fire Rating"
	ColLastInspection    = "Last Inspection Date"
)

func floatPtr(v float64) *float64 { return &v }

// Buildings returns the column schema for building imports.
func Buildings() Schema {
	return Schema{
		Entity: "buildings",
		Fields: []Field{
			{Name: ColBuildingName, Kind: KindString, Required: true,
				Help: "Unique building name within your organisation"},
			{Name: ColAddressLine1, Kind: KindString,
				Help: "First address line"},
			{Name: ColAddressLine2, Kind: KindString,
				Help: "Second address line (optional)"},
			{Name: ColCity, Kind: KindString,
				Help: "Town or city"},
			{Name: ColPostcode, Kind: KindString,
				Help: "Postcode"},
			{Name: ColBuildingType, Kind: KindEnum,
				Enum: []string{"residential", "commercial", "mixed_use", "education", "healthcare"},
				Help: "One of: residential, commercial, mixed_use, education, healthcare"},
			{Name: ColStoreyCount, Kind: KindInteger, Min: floatPtr(0),
				Help: "Number of storeys, zero or more"},
			{Name: ColTopStoreyHeight, Kind: KindDecimal, Min: floatPtr(0),
				Help: "Height of the top occupied storey in metres; drives the 3-monthly inspection rule above 11m"},
			{Name: ColContactName, Kind: KindString,
				Help: "On-site contact name (optional)"},
			{Name: ColContactPhone, Kind: KindString,
				Help: "On-site contact phone (optional)"},
		},
	}
}

// Doors returns the column schema for fire door imports. The Building Name
// column is a reference: it must match an existing building of the tenant.
func Doors() Schema {
	return Schema{
		Entity: "doors",
		Fields: []Field{
			{Name: ColBuildingName, Kind: KindString, Required: true,
				Help: "Name of an existing building the door belongs to"},
			{Name: ColDoorNumber, Kind: KindString, Required: true,
				Help: "Door number, unique within the building"},
			{Name: ColDoorLocation, Kind: KindString,
				Help: "Where the door is located, e.g. 'Floor 3, east corridor'"},
			{Name: ColDoorType, Kind: KindEnum, Required: true,
				Enum: []string{"FLAT_ENTRANCE", "COMMUNAL", "PLANT_ROOM", "STAIRWELL", "OTHER"},
				Help: "One of: FLAT_ENTRANCE, COMMUNAL, PLANT_ROOM, STAIRWELL, OTHER"},
			{Name: ColFireRating, Kind: KindString,
				Help: "Fire rating, e.g. FD30 or FD60 (optional)"},
			{Name: ColLastInspection, Kind: KindDate,
				Help: "Date of the most recent inspection, format 2006-01-02 (optional)"},
		},
	}
}

// ForEntity resolves an entity kind name to its schema.
func ForEntity(entity string) (Schema, bool) {
	switch entity {
	case "buildings":
		return Buildings(), true
	case "doors":
		return Doors(), true
	default:
		return Schema{}, false
	}
}
