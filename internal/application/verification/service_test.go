package verification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eventpill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *mockAccounts) ClearCode(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

type mockErrorLog struct{ mock.Mock }

func (m *mockErrorLog) Log(ctx context.Context, endpoint string, err error) {
	m.Called(ctx, endpoint, err)
}

func TestVerifyCode_Required(t *testing.T) {
	err := NewService(ServiceDeps{}).VerifyCode(context.Background(), "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Authentication code is required", ve.Message)
}

func TestVerifyCode_MalformedSkipsLookup(t *testing.T) {
	acc := &mockAccounts{}
	svc := NewService(ServiceDeps{Accounts: acc})
	for _, code := range []string{"12345", "1234567", "abcdef", "012345"} {
		assert.ErrorIs(t, svc.VerifyCode(context.Background(), code), domain.ErrInvalidCode, code)
	}
	acc.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}

func TestVerifyCode_UnknownCode(t *testing.T) {
	acc := &mockAccounts{}
	acc.On("FindByCode", mock.Anything, "482913").Return(nil, domain.ErrNotFound)

	err := NewService(ServiceDeps{Accounts: acc}).VerifyCode(context.Background(), "482913")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	acc.AssertNotCalled(t, "ClearCode", mock.Anything, mock.Anything)
}

func TestVerifyCode_ClearsCode(t *testing.T) {
	acc := &mockAccounts{}
	code := "482913"
	acc.On("FindByCode", mock.Anything, code).Return(&domain.Account{ID: "acc-1", AuthCode: &code}, nil)
	acc.On("ClearCode", mock.Anything, "acc-1").Return(true, nil)

	require.NoError(t, NewService(ServiceDeps{Accounts: acc}).VerifyCode(context.Background(), " 482913 "))
	acc.AssertExpectations(t)
}

func TestVerifyCode_LookupFaultIsLogged(t *testing.T) {
	acc := &mockAccounts{}
	el := &mockErrorLog{}
	acc.On("FindByCode", mock.Anything, mock.Anything).Return(nil, domain.ErrStoreTimeout)
	el.On("Log", mock.Anything, Operation, mock.Anything).Return()

	err := NewService(ServiceDeps{Accounts: acc, ErrorLog: el}).VerifyCode(context.Background(), "482913")
	assert.ErrorIs(t, err, domain.ErrStoreTimeout)
	assert.NotErrorIs(t, err, domain.ErrInvalidCode)
	el.AssertExpectations(t)
}

func TestVerifyCode_ClearFaultIsLogged(t *testing.T) {
	acc := &mockAccounts{}
	el := &mockErrorLog{}
	acc.On("FindByCode", mock.Anything, mock.Anything).Return(&domain.Account{ID: "acc-1"}, nil)
	acc.On("ClearCode", mock.Anything, "acc-1").Return(false, domain.ErrStore)
	el.On("Log", mock.Anything, Operation, mock.Anything).Return()

	err := NewService(ServiceDeps{Accounts: acc, ErrorLog: el}).VerifyCode(context.Background(), "482913")
	assert.ErrorIs(t, err, domain.ErrStore)
	el.AssertExpectations(t)
}

func TestVerifyCode_LosingConcurrentRedeemIsInvalid(t *testing.T) {
	acc := &mockAccounts{}
	code := "482913"
	acc.On("FindByCode", mock.Anything, code).Return(&domain.Account{ID: "acc-1", AuthCode: &code}, nil)
	acc.On("ClearCode", mock.Anything, "acc-1").Return(false, nil)

	err := NewService(ServiceDeps{Accounts: acc}).VerifyCode(context.Background(), code)
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

// racingAccounts holds every FindByCode caller until all of them have
// looked up the still-pending account.
type racingAccounts struct {
	arrived sync.WaitGroup
	mu      sync.Mutex
	code    *string
}

func (r *racingAccounts) FindByCode(_ context.Context, code string) (*domain.Account, error) {
	r.mu.Lock()
	pending := r.code != nil && *r.code == code
	r.mu.Unlock()
	r.arrived.Done()
	r.arrived.Wait()
	if !pending {
		return nil, domain.ErrNotFound
	}
	return &domain.Account{ID: "acc-1", AuthCode: &code}, nil
}

func (r *racingAccounts) ClearCode(context.Context, string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code == nil {
		return false, nil
	}
	r.code = nil
	return true, nil
}

func TestVerifyCode_ConcurrentRedeemSucceedsOnce(t *testing.T) {
	const callers = 2
	code := "482913"
	acc := &racingAccounts{code: &code}
	acc.arrived.Add(callers)
	svc := NewService(ServiceDeps{Accounts: acc})

	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() { errs <- svc.VerifyCode(context.Background(), "482913") }()
	}

	var ok, invalid int
	for i := 0; i < callers; i++ {
		switch err := <-errs; {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInvalidCode):
			invalid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, invalid)
}
