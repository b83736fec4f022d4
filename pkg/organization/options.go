package organization

type FindOptions struct {
	Ids []string
}

type CreateOptions struct {
	Name                string
	AdminUserIds        []string
	ShowConversionModal bool
}

type UpdateOptions struct {
	Name                string
	ShowConversionModal bool
}

type UpdateFieldMask struct {
	Name                bool
	ShowConversionModal bool
}
