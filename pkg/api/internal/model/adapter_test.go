package model

import (
	"testing"

	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/notification"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

func TestAdaptersKeepNil(t *testing.T) {
	if ToUser(nil) != nil || ToTeam(nil) != nil || ToMeeting(nil) != nil || ToTeamMember(nil) != nil {
		t.Fatalf("expected nil entities to adapt to nil")
	}
}

func TestToArchiveTeamPayload(t *testing.T) {
	payload := ToArchiveTeamPayload(&manage.ArchivedTeam{
		Team:                 &team.Team{Id: "t1", OrgId: "o1", IsArchived: true},
		RemovedFromUsers:     []*user.User{{Id: "u1"}, {Id: "u2"}},
		DeactivatedTemplates: []*template.MeetingTemplate{{Id: "tpl1"}},
		Notifications:        []*notification.Notification{{Id: "n1", UserId: "u2", Type: notification.TypeTeamArchived}},
	})

	if payload.Team.ID != "t1" || !payload.Team.IsArchived {
		t.Fatalf("unexpected team %+v", payload.Team)
	}
	if len(payload.RemovedFromUserIds) != 2 || payload.RemovedFromUserIds[1] != "u2" {
		t.Fatalf("unexpected removed user ids %v", payload.RemovedFromUserIds)
	}
	if len(payload.DeactivatedTemplateIds) != 1 || payload.DeactivatedTemplateIds[0] != "tpl1" {
		t.Fatalf("unexpected template ids %v", payload.DeactivatedTemplateIds)
	}
	if len(payload.Notifications) != 1 || payload.Notifications[0].UserID != "u2" {
		t.Fatalf("unexpected notifications %v", payload.Notifications)
	}
}
