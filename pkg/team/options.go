package team

type FindOptions struct {
	Ids          []string
	OrgIds       []string
	Query        string
	WithArchived bool
}

type CreateOptions struct {
	OrgId string
	Name  string
}
