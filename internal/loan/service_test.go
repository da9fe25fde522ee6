// AngelaMos | 2026
// service_test.go

package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/core"
)

type fakeRepo struct {
	loans      map[int64]*Loan
	nextID     int64
	ongoing    map[int64]bool
	createErr  error
	returnedAt time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		loans:   make(map[int64]*Loan),
		ongoing: make(map[int64]bool),
		nextID:  1,
	}
}

func (f *fakeRepo) Create(_ context.Context, l *Loan) error {
	if f.createErr != nil {
		return f.createErr
	}
	l.ID = f.nextID
	f.nextID++
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	clone := *l
	f.loans[l.ID] = &clone
	f.ongoing[l.BookID] = true
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Loan, error) {
	l, ok := f.loans[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (f *fakeRepo) HasOngoingByBookID(
	_ context.Context,
	bookID int64,
) (bool, error) {
	return f.ongoing[bookID], nil
}

func (f *fakeRepo) ListOngoing(_ context.Context) ([]Loan, error) {
	var out []Loan
	for _, l := range f.loans {
		if l.ReturnedAt == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOngoingByUserID(
	_ context.Context,
	userID int64,
) ([]Loan, error) {
	var out []Loan
	for _, l := range f.loans {
		if l.UserID == userID && l.ReturnedAt == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUserID(
	_ context.Context,
	userID int64,
) ([]Loan, error) {
	var out []Loan
	for _, l := range f.loans {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByBookID(
	_ context.Context,
	bookID int64,
) ([]Loan, error) {
	var out []Loan
	for _, l := range f.loans {
		if l.BookID == bookID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) Return(
	_ context.Context,
	id int64,
	status string,
	returnedAt time.Time,
) (*Loan, error) {
	l, ok := f.loans[id]
	if !ok || l.ReturnedAt != nil {
		return nil, core.ErrConflict
	}
	l.Status = status
	l.ReturnedAt = &returnedAt
	f.returnedAt = returnedAt
	delete(f.ongoing, l.BookID)
	clone := *l
	return &clone, nil
}

type fakeBooks struct {
	existing map[int64]bool
}

func (f *fakeBooks) Exists(_ context.Context, id int64) (bool, error) {
	return f.existing[id], nil
}

func newTestService(repo *fakeRepo, books *fakeBooks) *Service {
	return NewService(repo, books, 21*24*time.Hour)
}

func TestCreateDefaultsDueDateToLendingPeriod(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	before := time.Now().UTC()
	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	after := time.Now().UTC()

	require.NoError(t, err)
	require.NotNil(t, l.DueAt)

	assert.Equal(t, StatusOngoing, l.Status)
	assert.False(t, l.DueAt.Before(before.Add(21*24*time.Hour)))
	assert.False(t, l.DueAt.After(after.Add(21*24*time.Hour)))
}

func TestCreateKeepsExplicitDueDate(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	dueAt := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{
		BookID: 7,
		DueAt:  &dueAt,
	})

	require.NoError(t, err)
	require.NotNil(t, l.DueAt)
	assert.True(t, l.DueAt.Equal(dueAt))
}

func TestCreateUnknownBook(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{}}
	svc := newTestService(repo, books)

	_, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 99})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateRejectsBookAlreadyOnLoan(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	_, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 2, CreateLoanRequest{BookID: 7})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestReturnOnTime(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), l.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
}

func TestReturnAfterDueDateIsLate(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	dueAt := time.Now().UTC().Add(-time.Hour)
	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{
		BookID: 7,
		DueAt:  &dueAt,
	})
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), l.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusLate, returned.Status)
}

func TestReturnWithoutDueDateIsNeverLate(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	require.NoError(t, err)

	// Simulate a legacy row with no due date.
	repo.loans[l.ID].DueAt = nil

	returned, err := svc.Return(context.Background(), l.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusReturned, returned.Status)
}

func TestReturnTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), l.ID)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), l.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestReturnUnknownLoan(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{}}
	svc := newTestService(repo, books)

	_, err := svc.Return(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestBookBorrowableAgainAfterReturn(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeBooks{existing: map[int64]bool{7: true}}
	svc := newTestService(repo, books)

	l, err := svc.Create(context.Background(), 1, CreateLoanRequest{BookID: 7})
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), l.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 2, CreateLoanRequest{BookID: 7})
	assert.NoError(t, err)
}
