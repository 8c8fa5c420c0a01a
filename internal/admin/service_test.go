package admin

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
	"github.com/okayr/okayr-api/internal/mail"
	"github.com/okayr/okayr-api/internal/user"
)

type recordingMailer struct {
	mail.Mailer
	activated   []string
	deactivated []string
}

func (m *recordingMailer) SendAccountActivated(_ context.Context, to, _ string) error {
	m.activated = append(m.activated, to)
	return nil
}

func (m *recordingMailer) SendAccountDeactivated(_ context.Context, to, _ string) error {
	m.deactivated = append(m.deactivated, to)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&user.User{}, &AuditLog{}))
	return db
}

func newTestService(t *testing.T) (*Service, user.Repository, *recordingMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	users := user.NewRepository(db)
	mailer := &recordingMailer{Mailer: mail.NewNoopMailer()}
	return NewService(db, users, mailer), users, mailer, db
}

func seedUser(t *testing.T, users user.Repository, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:        uuid.New(),
		FirstName: "Sara",
		LastName:  "Ahmadi",
		Username:  username,
		Email:     username + "@example.com",
		Role:      user.RoleUser,
	}
	require.NoError(t, users.Create(u))
	return u
}

func adminCtx() context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UserID: uuid.New().String(),
		Role:   auth.RoleAdmin,
	})
}

func userCtx() context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UserID: uuid.New().String(),
		Role:   auth.RoleUser,
	})
}

func TestListUsersRequiresAdminRole(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	seedUser(t, users, "sara")

	_, err := svc.ListUsers(userCtx())
	assert.ErrorIs(t, err, ErrForbidden)

	listed, err := svc.ListUsers(adminCtx())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSetUserActiveSendsEmailAndAudits(t *testing.T) {
	svc, users, mailer, db := newTestService(t)
	u := seedUser(t, users, "sara")

	resp, err := svc.SetUserActive(adminCtx(), u.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, []string{"sara@example.com"}, mailer.activated)

	resp, err = svc.SetUserActive(adminCtx(), u.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, []string{"sara@example.com"}, mailer.deactivated)

	var logs []AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 2)
	actions := []string{logs[0].Action, logs[1].Action}
	assert.ElementsMatch(t, []string{"user.activate", "user.deactivate"}, actions)
	assert.Equal(t, u.ID, logs[0].TargetID)
}

func TestSetUserActiveUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.SetUserActive(adminCtx(), uuid.New(), true)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestDeleteUserLeavesAuditTrail(t *testing.T) {
	svc, users, _, db := newTestService(t)
	u := seedUser(t, users, "sara")

	require.NoError(t, svc.DeleteUser(adminCtx(), u.ID))

	_, err := users.FindByID(u.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	var entry AuditLog
	require.NoError(t, db.First(&entry, "action = ?", "user.delete").Error)
	assert.Equal(t, u.ID, entry.TargetID)
	assert.Contains(t, string(entry.Details), "sara")
}

func TestDeleteUserRequiresAdminRole(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	u := seedUser(t, users, "sara")

	err := svc.DeleteUser(userCtx(), u.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
