package cycle

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/notify"
	"github.com/okayr/okayr-api/internal/user"
	util "github.com/okayr/okayr-api/internal/utils"
)

type fakeObjectiveCounter struct {
	count int64
}

func (f *fakeObjectiveCounter) CountByCycleID(uuid.UUID) (int64, error) {
	return f.count, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&user.User{}, &OkrCycle{}, &ActiveOkrCycle{}))
	return db
}

func newTestService(t *testing.T, counter *fakeObjectiveCounter) Service {
	t.Helper()
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

func quarter(name string) CreateCycleDTO {
	return CreateCycleDTO{
		Name:      name,
		StartDate: util.NewLocalDate(2026, time.January, 1),
		EndDate:   util.NewLocalDate(2026, time.March, 31),
	}
}

func TestCreateCycleRejectsInvertedRange(t *testing.T) {
	svc := newTestService(t, nil)

	dto := quarter("Q1")
	dto.StartDate, dto.EndDate = dto.EndDate, dto.StartDate

	_, err := svc.CreateCycle(authedCtx(uuid.New()), dto)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestListCyclesScopedToOwner(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()
	other := uuid.New()

	_, err := svc.CreateCycle(authedCtx(owner), quarter("Q1"))
	require.NoError(t, err)
	_, err = svc.CreateCycle(authedCtx(other), quarter("Someone else's Q1"))
	require.NoError(t, err)

	cycles, err := svc.ListCycles(authedCtx(owner))
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, "Q1", cycles[0].Name)
}

func TestUpdateCycleRequiresOwnership(t *testing.T) {
	svc := newTestService(t, nil)

	created, err := svc.CreateCycle(authedCtx(uuid.New()), quarter("Q1"))
	require.NoError(t, err)

	_, err = svc.UpdateCycle(authedCtx(uuid.New()), UpdateCycleDTO{
		ID:        created.ID,
		Name:      "Hijacked",
		StartDate: created.StartDate,
		EndDate:   created.EndDate,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteCycleBlockedByObjectives(t *testing.T) {
	counter := &fakeObjectiveCounter{count: 1}
	svc := newTestService(t, counter)
	owner := uuid.New()

	created, err := svc.CreateCycle(authedCtx(owner), quarter("Q1"))
	require.NoError(t, err)

	err = svc.DeleteCycle(authedCtx(owner), created.ID.String())
	assert.ErrorIs(t, err, ErrCycleHasObjectives)

	counter.count = 0
	require.NoError(t, svc.DeleteCycle(authedCtx(owner), created.ID.String()))

	cycles, err := svc.ListCycles(authedCtx(owner))
	require.NoError(t, err)
	assert.Empty(t, cycles)
}

func TestActiveCycleSelection(t *testing.T) {
	svc := newTestService(t, nil)
	owner := uuid.New()

	_, err := svc.GetActiveCycle(authedCtx(owner))
	assert.ErrorIs(t, err, ErrNoActiveCycle)

	q1, err := svc.CreateCycle(authedCtx(owner), quarter("Q1"))
	require.NoError(t, err)

	q2dto := quarter("Q2")
	q2dto.StartDate = util.NewLocalDate(2026, time.April, 1)
	q2dto.EndDate = util.NewLocalDate(2026, time.June, 30)
	q2, err := svc.CreateCycle(authedCtx(owner), q2dto)
	require.NoError(t, err)

	require.NoError(t, svc.SetActiveCycle(authedCtx(owner), SetActiveCycleDTO{CycleID: q1.ID}))

	active, err := svc.GetActiveCycle(authedCtx(owner))
	require.NoError(t, err)
	assert.Equal(t, q1.ID, active.ID)

	// Switching replaces the row instead of accumulating.
	require.NoError(t, svc.SetActiveCycle(authedCtx(owner), SetActiveCycleDTO{CycleID: q2.ID}))

	active, err = svc.GetActiveCycle(authedCtx(owner))
	require.NoError(t, err)
	assert.Equal(t, q2.ID, active.ID)
}

func TestSetActiveCycleUnknownCycle(t *testing.T) {
	svc := newTestService(t, nil)

	err := svc.SetActiveCycle(authedCtx(uuid.New()), SetActiveCycleDTO{CycleID: uuid.New()})
	assert.ErrorIs(t, err, ErrCycleNotFound)
}
