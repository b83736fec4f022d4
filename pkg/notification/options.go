package notification

type FindOptions struct {
	Ids     []string
	UserIds []string
}

type TeamArchivedOptions struct {
	UserIds        []string
	TeamId         string
	ArchivorUserId string
}
