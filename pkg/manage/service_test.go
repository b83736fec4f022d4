package manage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	bboltdb "go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/datastore/bbolt"
	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/notification"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/subscription"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

type testEnv struct {
	service             Service
	loaders             *loaders.Loaders
	notificationService notification.Service
	seed                *SeedResult
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := bboltdb.Open(filepath.Join(t.TempDir(), "teamboard.db"), 0600, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	userService := user.NewService(bbolt.NewUserRepository(db))
	organizationService := organization.NewService(bbolt.NewOrganizationRepository(db))
	teamService := team.NewService(bbolt.NewTeamRepository(db), subscription.NewInMemorySubscription())
	teamMemberService := teammember.NewService(bbolt.NewTeamMemberRepository(db))
	meetingService := meeting.NewService(bbolt.NewMeetingRepository(db))
	meetingMemberService := meetingmember.NewService(bbolt.NewMeetingMemberRepository(db))
	templateService := template.NewService(bbolt.NewTemplateRepository(db))
	notificationService := notification.NewService(bbolt.NewNotificationRepository(db))

	l, err := loaders.New(loaders.Config{
		UserService:          userService,
		OrganizationService:  organizationService,
		TeamService:          teamService,
		TeamMemberService:    teamMemberService,
		MeetingService:       meetingService,
		MeetingMemberService: meetingMemberService,
		TemplateService:      templateService,
		MeetingSource:        bbolt.NewLegacyTableSource[meeting.Meeting](db, bbolt.MeetingTable),
	})
	if err != nil {
		t.Fatalf("failed to create loaders: %v", err)
	}

	service := NewService(
		dbx.NewBBoltTransactionScoper(db),
		l,
		userService,
		organizationService,
		teamService,
		teamMemberService,
		meetingService,
		meetingMemberService,
		templateService,
		notificationService,
	)

	seed, err := service.Seed(context.Background())
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	return &testEnv{
		service:             service,
		loaders:             l,
		notificationService: notificationService,
		seed:                seed,
	}
}

func (e *testEnv) requestContext() (context.Context, *dataloader.Registry) {
	registry := e.loaders.NewRegistry(context.Background(), dataloader.Options{Wait: time.Millisecond})
	return dataloader.NewContext(context.Background(), registry), registry
}

func TestSeed(t *testing.T) {
	env := newTestEnv(t)

	if len(env.seed.Users) != 3 || len(env.seed.Teams) != 2 || len(env.seed.Meetings) != 2 {
		t.Fatalf("unexpected seed result: %+v", env.seed)
	}
	if len(env.seed.Users[1].TeamIds) != 2 {
		t.Fatalf("expected bob to be in both teams, got %v", env.seed.Users[1].TeamIds)
	}

	if _, err := env.service.Seed(context.Background()); !errors.Is(err, ErrAlreadySeeded) {
		t.Fatalf("expected %v, got %v", ErrAlreadySeeded, err)
	}

	_, registry := env.requestContext()
	lead, err := dataloader.Get(registry, env.loaders.TeamLeadByTeamId).Load(env.seed.Teams[1].Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead == nil || lead.UserId != env.seed.Users[1].Id {
		t.Fatalf("expected bob to lead payments, got %v", lead)
	}
}

func TestArchiveTeamByLead(t *testing.T) {
	env := newTestEnv(t)
	ctx, registry := env.requestContext()
	alice, bob := env.seed.Users[0], env.seed.Users[1]
	platform := env.seed.Teams[0]

	teams, err := dataloader.Get(registry, env.loaders.TeamsByOrgId).Load(env.seed.Organization.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams before archiving, got %d", len(teams))
	}

	archived, err := env.service.ArchiveTeam(ctx, alice.Id, platform.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !archived.Team.IsArchived {
		t.Fatalf("expected team to be archived")
	}
	if len(archived.RemovedFromUsers) != 2 {
		t.Fatalf("expected the team to be removed from 2 users, got %d", len(archived.RemovedFromUsers))
	}
	if len(archived.DeactivatedTemplates) != 1 || archived.DeactivatedTemplates[0].IsActive {
		t.Fatalf("expected 1 deactivated template, got %v", archived.DeactivatedTemplates)
	}
	if len(archived.Notifications) != 1 || archived.Notifications[0].UserId != bob.Id {
		t.Fatalf("expected bob to be notified, got %v", archived.Notifications)
	}

	teams, err = dataloader.Get(registry, env.loaders.TeamsByOrgId).Load(env.seed.Organization.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 1 || teams[0].Id != env.seed.Teams[1].Id {
		t.Fatalf("expected invalidation to drop the archived team, got %v", teams)
	}

	u, err := dataloader.Get(registry, env.loaders.Users).Load(bob.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(u.TeamIds) != 1 {
		t.Fatalf("expected bob to be left with one team, got %v", u.TeamIds)
	}

	templates, err := dataloader.Get(registry, env.loaders.MeetingTemplatesByTeamId).Load(platform.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected no active templates, got %v", templates)
	}

	notifications, err := env.notificationService.FindNotifications(ctx, &notification.FindOptions{UserIds: []string{alice.Id}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications) != 0 {
		t.Fatalf("expected the archivor not to be notified, got %v", notifications)
	}

	if _, err := env.service.ArchiveTeam(ctx, alice.Id, platform.Id); !errors.Is(err, team.ErrTeamAlreadyArchived) {
		t.Fatalf("expected %v, got %v", team.ErrTeamAlreadyArchived, err)
	}
}

func TestArchiveTeamByOrgAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.requestContext()

	if _, err := env.service.ArchiveTeam(ctx, env.seed.Users[0].Id, env.seed.Teams[1].Id); err != nil {
		t.Fatalf("expected the org admin to archive a team they do not lead, got %v", err)
	}
}

func TestArchiveTeamRejectsMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.requestContext()

	if _, err := env.service.ArchiveTeam(ctx, env.seed.Users[2].Id, env.seed.Teams[1].Id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected %v, got %v", ErrForbidden, err)
	}
	if _, err := env.service.ArchiveTeam(ctx, env.seed.Users[0].Id, "missing"); !errors.Is(err, dataloader.ErrNotFound) {
		t.Fatalf("expected %v, got %v", dataloader.ErrNotFound, err)
	}
	if _, err := env.service.ArchiveTeam(ctx, "", env.seed.Teams[1].Id); !errors.Is(err, ErrViewerRequired) {
		t.Fatalf("expected %v, got %v", ErrViewerRequired, err)
	}
	if _, err := env.service.ArchiveTeam(context.Background(), env.seed.Users[0].Id, env.seed.Teams[1].Id); !errors.Is(err, dataloader.ErrRegistryNotFound) {
		t.Fatalf("expected %v, got %v", dataloader.ErrRegistryNotFound, err)
	}
}

func TestHideConversionModal(t *testing.T) {
	env := newTestEnv(t)
	ctx, registry := env.requestContext()
	orgId := env.seed.Organization.Id

	if _, err := env.service.HideConversionModal(ctx, env.seed.Users[1].Id, orgId); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected %v, got %v", ErrForbidden, err)
	}

	meetings, err := dataloader.Get(registry, env.loaders.ActiveMeetingsByOrgId).Load(orgId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range meetings {
		if !m.ShowConversionModal {
			t.Fatalf("expected seeded meetings to show the conversion modal")
		}
	}

	updated, err := env.service.HideConversionModal(ctx, env.seed.Users[0].Id, orgId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("expected 2 updated meetings, got %d", len(updated))
	}

	org, err := dataloader.Get(registry, env.loaders.Organizations).Load(orgId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.ShowConversionModal {
		t.Fatalf("expected invalidated organization to reflect the hidden modal")
	}

	meetings, err = dataloader.Get(registry, env.loaders.ActiveMeetingsByOrgId).Load(orgId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range meetings {
		if m.ShowConversionModal {
			t.Fatalf("expected invalidated meetings to reflect the hidden modal, got %s", m.Id)
		}
	}

	updated, err = env.service.HideConversionModal(ctx, env.seed.Users[0].Id, orgId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated) != 0 {
		t.Fatalf("expected nothing to update once hidden, got %d", len(updated))
	}
}
