package team

const (
	ChangedActionCreated  = "CREATED"
	ChangedActionArchived = "ARCHIVED"
)

type ChangedEvent struct {
	Action string
	Team   *Team
}
