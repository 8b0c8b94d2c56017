package schema

// MeterColumns is the export column tree for water meters. Group keys are
// label-only; leaf keys are dotted paths into the meter row object.
var MeterColumns = []ExportColumn{
	{Key: "_basic", Label: "Basic", Children: []ExportColumn{
		{Key: "serialNumber", Label: "Serial Number"},
		{Key: "name", Label: "Name"},
		{Key: "status", Label: "Status"},
		{Key: "initialIndex", Label: "Initial Index"},
		{Key: "installationDate", Label: "Installation Date"},
	}},
	{Key: "_profile", Label: "Profile", Children: []ExportColumn{
		{Key: "profile.name", Label: "Profile Name"},
		{Key: "profile.brand", Label: "Brand"},
		{Key: "profile.model", Label: "Model"},
		{Key: "profile.diameter", Label: "Diameter"},
	}},
	{Key: "_subscription", Label: "Subscription", Children: []ExportColumn{
		{Key: "subscription.subscriptionNumber", Label: "Subscription Number"},
		{Key: "subscription.address.city", Label: "City"},
		{Key: "subscription.address.district", Label: "District"},
	}},
	{Key: "_module", Label: "Module", Children: []ExportColumn{
		{Key: "module.serialNumber", Label: "Module Serial"},
		{Key: "module.technology", Label: "Technology"},
	}},
}

// MeterImportFields are the expected CSV columns for meter bulk import.
var MeterImportFields = []FieldSpec{
	{Name: "serialNumber", Label: "Serial Number", Required: true, MaxLen: 64},
	{Name: "initialIndex", Label: "Initial Index", Required: true, Pattern: `\d+(\.\d+)?`},
	{Name: "installationDate", Label: "Installation Date", Required: false, AllowEmpty: true, Pattern: `\d{4}-\d{2}-\d{2}`},
	{Name: "status", Label: "Status", Required: false, AllowEmpty: true, EnumValues: []string{"active", "passive", "stock", "faulty"}},
}
