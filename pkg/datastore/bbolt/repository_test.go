package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "teamboard.db"), 0600, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestFindOnMissingBucketIsEmpty(t *testing.T) {
	db := openTestDB(t)

	users, err := NewUserRepository(db).FindAll(context.Background(), &user.FindOptions{Ids: []string{"u1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repository := NewUserRepository(openTestDB(t))

	for _, u := range []*user.User{
		{Id: "u1", Email: "alice@example.com", TeamIds: []string{"t1", "t2"}},
		{Id: "u2", Email: "bob@example.com"},
	} {
		if _, err := repository.Create(ctx, u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	if _, err := repository.Create(ctx, &user.User{Id: "u1"}); !errors.Is(err, user.ErrUserIdAlreadyExists) {
		t.Fatalf("expected %v, got %v", user.ErrUserIdAlreadyExists, err)
	}

	users, err := repository.FindAll(ctx, &user.FindOptions{Ids: []string{"u2", "missing", "u1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].Id != "u2" || users[1].Id != "u1" {
		t.Fatalf("expected users in id order without missing ones, got %v", users)
	}

	users, err = repository.FindAll(ctx, &user.FindOptions{Query: "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Id != "u2" {
		t.Fatalf("expected query to match bob, got %v", users)
	}

	updated, err := repository.Update(ctx, &user.User{Id: "u1", TeamIds: []string{"t2"}}, &user.UpdateFieldMask{TeamIds: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.TeamIds) != 1 || updated.Email != "alice@example.com" {
		t.Fatalf("expected only team ids to change, got %+v", updated)
	}

	if _, err := repository.Update(ctx, &user.User{Id: "missing"}, &user.UpdateFieldMask{}); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected %v, got %v", user.ErrUserNotFound, err)
	}
}

func TestTeamRepository(t *testing.T) {
	ctx := context.Background()
	repository := NewTeamRepository(openTestDB(t))

	for _, tm := range []*team.Team{
		{Id: "t1", OrgId: "o1", Name: "platform"},
		{Id: "t2", OrgId: "o1", Name: "payments"},
		{Id: "t3", OrgId: "o2", Name: "growth"},
	} {
		if _, err := repository.Create(ctx, tm); err != nil {
			t.Fatalf("failed to create team: %v", err)
		}
	}

	teams, err := repository.FindAll(ctx, &team.FindOptions{OrgIds: []string{"o1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams of o1, got %d", len(teams))
	}

	teams, err = repository.FindAll(ctx, &team.FindOptions{OrgIds: []string{"o1"}, Query: "pay"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 1 || teams[0].Id != "t2" {
		t.Fatalf("expected query to match payments, got %v", teams)
	}

	archived, err := repository.Archive(ctx, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archived == nil || !archived.IsArchived {
		t.Fatalf("expected archived team, got %+v", archived)
	}

	again, err := repository.Archive(ctx, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != nil {
		t.Fatalf("expected nil when archiving an archived team, got %+v", again)
	}

	teams, err = repository.FindAll(ctx, &team.FindOptions{Ids: []string{"t1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected archived team to be hidden, got %v", teams)
	}

	teams, err = repository.FindAll(ctx, &team.FindOptions{Ids: []string{"t1"}, WithArchived: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected archived team with WithArchived, got %v", teams)
	}

	if _, err := repository.Archive(ctx, "missing"); !errors.Is(err, team.ErrTeamNotFound) {
		t.Fatalf("expected %v, got %v", team.ErrTeamNotFound, err)
	}
}

func TestTemplateRepositoryDeactivate(t *testing.T) {
	ctx := context.Background()
	repository := NewTemplateRepository(openTestDB(t))

	for _, tpl := range []*template.MeetingTemplate{
		{Id: "tpl1", TeamId: "t1", Name: "Retro", IsActive: true},
		{Id: "tpl2", TeamId: "t1", Name: "Standup", IsActive: true},
	} {
		if _, err := repository.Create(ctx, tpl); err != nil {
			t.Fatalf("failed to create template: %v", err)
		}
	}

	deactivated, err := repository.Deactivate(ctx, []string{"tpl1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deactivated) != 1 || deactivated[0].IsActive {
		t.Fatalf("unexpected deactivated templates %v", deactivated)
	}

	templates, err := repository.FindAll(ctx, &template.FindOptions{TeamIds: []string{"t1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 1 || templates[0].Id != "tpl2" {
		t.Fatalf("expected only the active template, got %v", templates)
	}
}

func TestMeetingRepositoryAndLegacySource(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repository := NewMeetingRepository(db)
	source := NewLegacyTableSource[meeting.Meeting](db, MeetingTable)

	values, err := source.Fetch(ctx, []string{"m1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 1 || values[0] != nil {
		t.Fatalf("expected a nil value for a missing table, got %v", values)
	}

	ended := time.Now()
	for _, m := range []*meeting.Meeting{
		{Id: "m1", TeamId: "t1", MeetingType: meeting.TypeRetrospective},
		{Id: "m2", TeamId: "t1", MeetingType: meeting.TypeAction, EndedAt: &ended},
	} {
		if _, err := repository.Create(ctx, m); err != nil {
			t.Fatalf("failed to create meeting: %v", err)
		}
	}

	meetings, err := repository.FindAll(ctx, &meeting.FindOptions{TeamIds: []string{"t1"}, ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meetings) != 1 || meetings[0].Id != "m1" {
		t.Fatalf("expected only the active meeting, got %v", meetings)
	}

	values, err = source.Fetch(ctx, []string{"m2", "missing", "m1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[0].Id != "m2" || values[1] != nil || values[2].Id != "m1" {
		t.Fatalf("expected values aligned with keys, got %v", values)
	}

	updated, err := repository.Update(ctx, &meeting.Meeting{Id: "m1", ShowConversionModal: true}, &meeting.UpdateFieldMask{ShowConversionModal: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.ShowConversionModal || updated.MeetingType != meeting.TypeRetrospective {
		t.Fatalf("unexpected updated meeting %+v", updated)
	}
}

func TestRepositoriesJoinTransactionScope(t *testing.T) {
	db := openTestDB(t)
	scoper := dbx.NewBBoltTransactionScoper(db)
	repository := NewTeamRepository(db)
	scopeErr := errors.New("rollback")

	err := scoper.InTransactionScope(context.Background(), func(ctx context.Context) error {
		if _, err := repository.Create(ctx, &team.Team{Id: "t1", OrgId: "o1", Name: "platform"}); err != nil {
			return err
		}

		teams, err := repository.FindAll(ctx, &team.FindOptions{Ids: []string{"t1"}})
		if err != nil {
			return err
		}
		if len(teams) != 1 {
			t.Errorf("expected uncommitted team to be visible inside the scope")
		}
		return scopeErr
	})
	if !errors.Is(err, scopeErr) {
		t.Fatalf("expected %v, got %v", scopeErr, err)
	}

	teams, err := repository.FindAll(context.Background(), &team.FindOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected rolled back team to be gone, got %v", teams)
	}
}
