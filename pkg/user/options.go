package user

type FindOptions struct {
	Ids   []string
	Query string
}

type CreateOptions struct {
	Email         string
	PreferredName string
	TeamIds       []string
}

type UpdateOptions struct {
	PreferredName string
	TeamIds       []string
}

type UpdateFieldMask struct {
	PreferredName bool
	TeamIds       bool
}
