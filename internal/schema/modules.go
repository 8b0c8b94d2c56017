package schema

// ModuleColumns is the export column tree for communication modules. The
// technology-specific fields (DevEUI, ICCID, ...) live under dynamicFields
// and are flattened with that prefix; the static tree only names the ones
// common across profiles currently in the field.
var ModuleColumns = []ExportColumn{
	{Key: "_basic", Label: "Basic", Children: []ExportColumn{
		{Key: "serialNumber", Label: "Serial Number"},
		{Key: "name", Label: "Name"},
		{Key: "status", Label: "Status"},
		{Key: "technology", Label: "Technology"},
	}},
	{Key: "_profile", Label: "Profile", Children: []ExportColumn{
		{Key: "profile.name", Label: "Profile Name"},
		{Key: "profile.brand", Label: "Brand"},
		{Key: "profile.model", Label: "Model"},
	}},
	{Key: "_lora", Label: "LoRaWAN", Children: []ExportColumn{
		{Key: "dynamicFields.DevEUI", Label: "DevEUI"},
		{Key: "dynamicFields.JoinEUI", Label: "JoinEUI"},
		{Key: "dynamicFields.AppKey", Label: "AppKey"},
	}},
	{Key: "_cellular", Label: "Cellular", Children: []ExportColumn{
		{Key: "dynamicFields.ICCID", Label: "ICCID"},
		{Key: "dynamicFields.IMEI", Label: "IMEI"},
	}},
}

// ModuleImportFields are the static CSV columns for module bulk import.
// The technology fields are validated against the bound profile's field
// schema at import time, not here.
var ModuleImportFields = []FieldSpec{
	{Name: "serialNumber", Label: "Serial Number", Required: true, MaxLen: 64},
	{Name: "status", Label: "Status", Required: false, AllowEmpty: true, EnumValues: []string{"active", "passive", "stock", "faulty"}},
}
