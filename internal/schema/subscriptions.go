package schema

// SubscriptionColumns is the export column tree for subscriptions.
// Address is the deepest group; its leaves exercise three-level paths.
var SubscriptionColumns = []ExportColumn{
	{Key: "_basic", Label: "Basic", Children: []ExportColumn{
		{Key: "subscriptionNumber", Label: "Subscription Number"},
		{Key: "subscriptionGroup", Label: "Subscription Group"},
		{Key: "customer.customerNumber", Label: "Customer Number"},
	}},
	{Key: "_address", Label: "Address", Children: []ExportColumn{
		{Key: "address.city", Label: "City"},
		{Key: "address.district", Label: "District"},
		{Key: "address.neighborhood", Label: "Neighborhood"},
		{Key: "address.street", Label: "Street"},
		{Key: "address.buildingNo", Label: "Building No"},
	}},
	{Key: "_location", Label: "Location", Children: []ExportColumn{
		{Key: "location.latitude", Label: "Latitude"},
		{Key: "location.longitude", Label: "Longitude"},
	}},
}

// SubscriptionImportFields are the expected CSV columns for subscription
// bulk import.
var SubscriptionImportFields = []FieldSpec{
	{Name: "subscriptionNumber", Label: "Subscription Number", Required: true, MaxLen: 32},
	{Name: "customerNumber", Label: "Customer Number", Required: true, MaxLen: 32},
	{Name: "subscriptionGroup", Label: "Subscription Group", Required: false, AllowEmpty: true, MaxLen: 64},
	{Name: "city", Label: "City", Required: true, MaxLen: 64},
	{Name: "district", Label: "District", Required: false, AllowEmpty: true, MaxLen: 64},
	{Name: "neighborhood", Label: "Neighborhood", Required: false, AllowEmpty: true, MaxLen: 64},
	{Name: "street", Label: "Street", Required: false, AllowEmpty: true, MaxLen: 128},
	{Name: "buildingNo", Label: "Building No", Required: false, AllowEmpty: true, MaxLen: 16},
	{Name: "latitude", Label: "Latitude", Required: false, AllowEmpty: true, Pattern: `-?\d{1,2}(\.\d+)?`},
	{Name: "longitude", Label: "Longitude", Required: false, AllowEmpty: true, Pattern: `-?\d{1,3}(\.\d+)?`},
}
