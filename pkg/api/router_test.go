package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	bboltdb "go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/auth"
	"github.com/UnAfraid/teamboard/pkg/config"
	"github.com/UnAfraid/teamboard/pkg/datastore/bbolt"
	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/manage"
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

type testServer struct {
	handler     http.Handler
	authService auth.Service
	seed        *manage.SeedResult
}

type failingUserService struct {
	user.Service
	err error
}

func (s *failingUserService) FindUsers(context.Context, *user.FindOptions) ([]*user.User, error) {
	return nil, s.err
}

func newTestServer(t *testing.T, configure ...func(*loaders.Config)) *testServer {
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

	loadersConfig := loaders.Config{
		UserService:          userService,
		OrganizationService:  organizationService,
		TeamService:          teamService,
		TeamMemberService:    teamMemberService,
		MeetingService:       meetingService,
		MeetingMemberService: meetingMemberService,
		TemplateService:      templateService,
		MeetingSource:        bbolt.NewLegacyTableSource[meeting.Meeting](db, bbolt.MeetingTable),
	}
	for _, fn := range configure {
		fn(&loadersConfig)
	}

	l, err := loaders.New(loadersConfig)
	if err != nil {
		t.Fatalf("failed to create loaders: %v", err)
	}

	manageService := manage.NewService(
		dbx.NewBBoltTransactionScoper(db),
		l,
		userService,
		organizationService,
		teamService,
		teamMemberService,
		meetingService,
		meetingMemberService,
		templateService,
		notification.NewService(bbolt.NewNotificationRepository(db)),
	)

	seed, err := manageService.Seed(context.Background())
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	conf := &config.Config{
		DataLoader:                 &config.DataLoader{Wait: time.Millisecond, MaxBatch: 100},
		CorsAllowedOrigins:         []string{"*"},
		SubscriptionAllowedOrigins: []string{"*"},
	}
	authService := auth.NewService([]byte("secret"), time.Hour)

	return &testServer{
		handler:     NewRouter(conf, authService, l, nil, teamService, manageService),
		authService: authService,
		seed:        seed,
	}
}

func (s *testServer) token(t *testing.T, userId string) string {
	t.Helper()
	tokenString, _, err := s.authService.Sign(userId)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tokenString
}

func (s *testServer) do(t *testing.T, method string, path string, userId string, out any) int {
	t.Helper()
	request := httptest.NewRequest(method, path, nil)
	if len(userId) != 0 {
		request.Header.Set("Authorization", "Bearer "+s.token(t, userId))
	}

	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)

	if out != nil && recorder.Code == http.StatusOK {
		if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %s: %v", recorder.Body.String(), err)
		}
	}
	return recorder.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	if status := s.do(t, http.MethodGet, "/health", "", nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestMeeting(t *testing.T) {
	s := newTestServer(t)
	alice, carol := s.seed.Users[0], s.seed.Users[2]
	retro := s.seed.Meetings[0]
	path := "/api/meetings/" + retro.Id

	if status := s.do(t, http.MethodGet, path, "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", status)
	}
	if status := s.do(t, http.MethodGet, "/api/meetings/not-a-uuid", alice.Id, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an invalid id, got %d", status)
	}
	if status := s.do(t, http.MethodGet, "/api/meetings/"+s.seed.Organization.Id, alice.Id, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown meeting, got %d", status)
	}
	if status := s.do(t, http.MethodGet, path, carol.Id, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for a viewer outside the team, got %d", status)
	}

	var view model.MeetingView
	if status := s.do(t, http.MethodGet, path, alice.Id, &view); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if view.ID != retro.Id || view.CreatedByUser == nil || view.CreatedByUser.ID != alice.Id {
		t.Fatalf("unexpected meeting view %+v", view)
	}
	if view.Facilitator == nil || view.Facilitator.UserID != alice.Id || !view.Facilitator.IsLead {
		t.Fatalf("expected alice to facilitate, got %+v", view.Facilitator)
	}
	if len(view.MeetingMembers) != 2 {
		t.Fatalf("expected 2 meeting members, got %d", len(view.MeetingMembers))
	}
	if view.Team == nil || view.Organization == nil || view.Organization.ID != s.seed.Organization.Id {
		t.Fatalf("expected team and organization to be resolved, got %+v %+v", view.Team, view.Organization)
	}
	if view.ViewerMeetingMember == nil || view.ViewerMeetingMember.UserID != alice.Id {
		t.Fatalf("expected the viewer meeting member, got %+v", view.ViewerMeetingMember)
	}
}

func TestMeetingKeepsResolvedFieldsWhenOneFails(t *testing.T) {
	storageErr := errors.New("users storage down")
	s := newTestServer(t, func(config *loaders.Config) {
		config.UserService = &failingUserService{Service: config.UserService, err: storageErr}
	})
	alice := s.seed.Users[0]

	var view model.MeetingView
	if status := s.do(t, http.MethodGet, "/api/meetings/"+s.seed.Meetings[0].Id, alice.Id, &view); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if view.CreatedByUser != nil {
		t.Fatalf("expected createdByUser to be empty, got %+v", view.CreatedByUser)
	}
	if len(view.Errors) != 1 || !strings.Contains(view.Errors["createdByUser"], storageErr.Error()) {
		t.Fatalf("expected only createdByUser to fail, got %v", view.Errors)
	}
	if view.Team == nil || view.Organization == nil || view.Facilitator == nil {
		t.Fatalf("expected team, organization and facilitator to be resolved, got %+v", view)
	}
	if len(view.MeetingMembers) != 2 || view.ViewerMeetingMember == nil {
		t.Fatalf("expected meeting members to be resolved, got %+v", view)
	}
}

func TestTeam(t *testing.T) {
	s := newTestServer(t)
	bob := s.seed.Users[1]
	payments := s.seed.Teams[1]

	var view model.TeamView
	if status := s.do(t, http.MethodGet, "/api/teams/"+payments.Id, bob.Id, &view); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if view.Lead == nil || view.Lead.UserID != bob.Id {
		t.Fatalf("expected bob to lead payments, got %+v", view.Lead)
	}
	if len(view.Members) != 2 || len(view.MeetingTemplates) != 1 || len(view.ActiveMeetings) != 1 {
		t.Fatalf("unexpected team view %+v", view)
	}
	if view.Errors != nil {
		t.Fatalf("expected no field errors, got %v", view.Errors)
	}
}

func TestOrganizationTeams(t *testing.T) {
	s := newTestServer(t)
	carol := s.seed.Users[2]

	var view model.OrganizationTeams
	if status := s.do(t, http.MethodGet, "/api/organizations/"+s.seed.Organization.Id+"/teams", carol.Id, &view); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(view.Teams) != 2 || len(view.ActiveMeetings) != 2 {
		t.Fatalf("expected 2 teams and 2 active meetings, got %d and %d", len(view.Teams), len(view.ActiveMeetings))
	}
	for _, teamView := range view.Teams {
		if len(teamView.Members) != 2 || teamView.Lead == nil {
			t.Fatalf("expected members and lead of %s, got %+v", teamView.ID, teamView)
		}
	}
}

func TestArchiveTeam(t *testing.T) {
	s := newTestServer(t)
	alice, carol := s.seed.Users[0], s.seed.Users[2]
	path := "/api/teams/" + s.seed.Teams[0].Id + "/archive"

	if status := s.do(t, http.MethodPost, path, carol.Id, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}

	var payload model.ArchiveTeamPayload
	if status := s.do(t, http.MethodPost, path, alice.Id, &payload); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !payload.Team.IsArchived || len(payload.Notifications) != 1 || len(payload.RemovedFromUserIds) != 2 {
		t.Fatalf("unexpected archive payload %+v", payload)
	}

	if status := s.do(t, http.MethodPost, path, alice.Id, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 when archiving twice, got %d", status)
	}

	var view model.OrganizationTeams
	if status := s.do(t, http.MethodGet, "/api/organizations/"+s.seed.Organization.Id+"/teams", alice.Id, &view); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(view.Teams) != 1 {
		t.Fatalf("expected the archived team to be gone, got %d teams", len(view.Teams))
	}
}

func TestHideConversionModal(t *testing.T) {
	s := newTestServer(t)
	path := "/api/organizations/" + s.seed.Organization.Id + "/hide-conversion-modal"

	var payload model.HideConversionModalPayload
	if status := s.do(t, http.MethodPost, path, s.seed.Users[0].Id, &payload); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(payload.Meetings) != 2 {
		t.Fatalf("expected 2 updated meetings, got %d", len(payload.Meetings))
	}
	for _, m := range payload.Meetings {
		if m.ShowConversionModal {
			t.Fatalf("expected meeting %s to hide the conversion modal", m.ID)
		}
	}
}

func TestTeamSubscription(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.handler)
	defer server.Close()

	alice := s.seed.Users[0]
	platform := s.seed.Teams[0]
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/subscriptions/teams/" + platform.Id

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.token(t, alice.Id))
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	if status := s.do(t, http.MethodPost, "/api/teams/"+platform.Id+"/archive", alice.Id, nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var event model.TeamChangedEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if event.Action != team.ChangedActionArchived || event.Team == nil || event.Team.ID != platform.Id {
		t.Fatalf("unexpected event %+v", event)
	}
}
