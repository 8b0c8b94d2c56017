package schema

// CustomerColumns is the export column tree for customers. Personal and
// organization details are separate groups because individual and
// corporate customers populate different halves.
var CustomerColumns = []ExportColumn{
	{Key: "_basic", Label: "Basic", Children: []ExportColumn{
		{Key: "customerNumber", Label: "Customer Number"},
		{Key: "customerType", Label: "Customer Type"},
	}},
	{Key: "_person", Label: "Personal Details", Children: []ExportColumn{
		{Key: "details.firstName", Label: "First Name"},
		{Key: "details.lastName", Label: "Last Name"},
		{Key: "details.tcIdNo", Label: "National ID"},
	}},
	{Key: "_organization", Label: "Organization", Children: []ExportColumn{
		{Key: "organization.name", Label: "Organization Name"},
		{Key: "organization.taxId", Label: "Tax ID"},
	}},
	{Key: "_contact", Label: "Contact", Children: []ExportColumn{
		{Key: "contact.phone", Label: "Phone"},
		{Key: "contact.email", Label: "Email"},
	}},
}

// CustomerImportFields are the expected CSV columns for customer bulk import.
var CustomerImportFields = []FieldSpec{
	{Name: "customerNumber", Label: "Customer Number", Required: true, MaxLen: 32},
	{Name: "customerType", Label: "Customer Type", Required: true, EnumValues: []string{"individual", "organization"}},
	{Name: "firstName", Label: "First Name", Required: false, AllowEmpty: true, MaxLen: 100},
	{Name: "lastName", Label: "Last Name", Required: false, AllowEmpty: true, MaxLen: 100},
	{Name: "tcIdNo", Label: "National ID", Required: false, AllowEmpty: true, Pattern: `\d{11}`},
	{Name: "phone", Label: "Phone", Required: false, AllowEmpty: true, Pattern: `\+?[0-9 ()-]{7,20}`},
	{Name: "email", Label: "Email", Required: false, AllowEmpty: true, Pattern: `[^@\s]+@[^@\s]+\.[^@\s]+`},
	{Name: "organizationName", Label: "Organization Name", Required: false, AllowEmpty: true, MaxLen: 200},
	{Name: "taxId", Label: "Tax ID", Required: false, AllowEmpty: true, Pattern: `\d{10,11}`},
}
