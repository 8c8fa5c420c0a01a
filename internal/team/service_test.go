package team

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/notify"
	"github.com/okayr/okayr-api/internal/user"
)

type fakeObjectiveCounter struct {
	count int64
}

func (f *fakeObjectiveCounter) CountByTeamID(uuid.UUID) (int64, error) {
	return f.count, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&Team{},
		&Member{},
		&TeamMembership{},
		&InvitationLink{},
	))
	return db
}

func newTestService(t *testing.T, counter *fakeObjectiveCounter) Service {
	t.Helper()
	t.Setenv("CRYPTO_KEY", "0123456789abcdef0123456789abcdef")
	config.InitCrypto()

	if counter == nil {
		counter = &fakeObjectiveCounter{}
	}
	return NewService(NewRepository(newTestDB(t)), counter, notify.NewLogNotifier())
}

func authedCtx(userID uuid.UUID) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UserID: userID.String(),
		Role:   auth.RoleUser,
	})
}

func TestCreateTeamIssuesInvitationCode(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()

	avatar := "https://example.com/a.png"
	resp, err := svc.CreateTeam(authedCtx(owner), CreateTeamDTO{
		Name: "Growth",
		Members: []MemberFormDTO{
			{Name: "Sara", AvatarURL: &avatar},
			{Name: "Amir"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Growth", resp.Name)
	assert.Equal(t, RoleAdmin, resp.Role)
	assert.Len(t, resp.Members, 2)
	require.NotEmpty(t, resp.InvitationCode)

	// The code is a sealed team id, not a guessable slug.
	payload, err := config.Unseal(resp.InvitationCode)
	require.NoError(t, err)
	assert.Equal(t, resp.ID.String(), payload)
}

func TestNewMembersGetPlaceholderAvatar(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()

	custom := "https://example.com/sara.png"
	created, err := svc.CreateTeam(authedCtx(owner), CreateTeamDTO{
		Name: "Growth",
		Members: []MemberFormDTO{
			{Name: "Sara", AvatarURL: &custom},
			{Name: "Amir"},
		},
	})
	require.NoError(t, err)

	avatars := map[string]string{}
	for _, m := range created.Members {
		require.NotNil(t, m.AvatarURL)
		avatars[m.Name] = *m.AvatarURL
	}
	assert.Equal(t, custom, avatars["Sara"])
	assert.Equal(t, "https://placehold.co/40x40.png?text=A", avatars["Amir"])

	updated, err := svc.UpdateTeam(authedCtx(owner), UpdateTeamDTO{
		ID:      created.ID,
		Name:    "Growth",
		Members: []MemberFormDTO{{Name: "Sara"}, {Name: "Amir"}, {Name: "نیما"}},
	})
	require.NoError(t, err)

	for _, m := range updated.Members {
		if m.Name == "نیما" {
			require.NotNil(t, m.AvatarURL)
			assert.Equal(t, "https://placehold.co/40x40.png?text=ن", *m.AvatarURL)
		}
	}
}

func TestCreateTeamRequiresName(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.CreateTeam(authedCtx(uuid.New()), CreateTeamDTO{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoinTeamWithSealedCode(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()
	joiner := uuid.New()

	created, err := svc.CreateTeam(authedCtx(owner), CreateTeamDTO{Name: "Growth"})
	require.NoError(t, err)

	joined, err := svc.JoinTeam(authedCtx(joiner), JoinTeamDTO{Code: created.InvitationCode})
	require.NoError(t, err)
	assert.Equal(t, created.ID, joined.ID)
	assert.Equal(t, RoleMember, joined.Role)

	// Joining again is a no-op.
	again, err := svc.JoinTeam(authedCtx(joiner), JoinTeamDTO{Code: created.InvitationCode})
	require.NoError(t, err)
	assert.Equal(t, RoleMember, again.Role)

	teams, err := svc.ListTeams(authedCtx(joiner))
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestJoinTeamRejectsGarbageCode(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.JoinTeam(authedCtx(uuid.New()), JoinTeamDTO{Code: "not-a-real-code"})
	assert.ErrorIs(t, err, ErrInvalidInvite)
}

func TestUpdateTeamReconcilesMembersByName(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()

	created, err := svc.CreateTeam(authedCtx(owner), CreateTeamDTO{
		Name:    "Growth",
		Members: []MemberFormDTO{{Name: "A"}, {Name: "B"}},
	})
	require.NoError(t, err)

	var keptID uuid.UUID
	for _, m := range created.Members {
		if m.Name == "B" {
			keptID = m.ID
		}
	}

	updated, err := svc.UpdateTeam(authedCtx(owner), UpdateTeamDTO{
		ID:      created.ID,
		Name:    "Growth & Retention",
		Members: []MemberFormDTO{{Name: "B"}, {Name: "C"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Growth & Retention", updated.Name)
	names := make([]string, 0, len(updated.Members))
	for _, m := range updated.Members {
		names = append(names, m.Name)
		if m.Name == "B" {
			assert.Equal(t, keptID, m.ID, "surviving member keeps its row")
		}
	}
	assert.ElementsMatch(t, []string{"B", "C"}, names)
}

func TestUpdateTeamRequiresMembership(t *testing.T) {
	svc := newTestService(t, nil)

	created, err := svc.CreateTeam(authedCtx(uuid.New()), CreateTeamDTO{Name: "Growth"})
	require.NoError(t, err)

	_, err = svc.UpdateTeam(authedCtx(uuid.New()), UpdateTeamDTO{ID: created.ID, Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteTeamBlockedByObjectives(t *testing.T) {
	counter := &fakeObjectiveCounter{count: 2}
	svc := newTestService(t, counter)
	owner := uuid.New()

	created, err := svc.CreateTeam(authedCtx(owner), CreateTeamDTO{Name: "Growth"})
	require.NoError(t, err)

	err = svc.DeleteTeam(authedCtx(owner), created.ID.String())
	assert.ErrorIs(t, err, ErrTeamHasObjectives)

	counter.count = 0
	require.NoError(t, svc.DeleteTeam(authedCtx(owner), created.ID.String()))

	teams, err := svc.ListTeams(authedCtx(owner))
	require.NoError(t, err)
	assert.Empty(t, teams)
}
