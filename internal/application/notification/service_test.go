package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/eventpill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockErrorLog struct{ mock.Mock }

func (m *mockErrorLog) Log(ctx context.Context, endpoint string, err error) {
	m.Called(ctx, endpoint, err)
}

func newService(ml *mockMailer, el *mockErrorLog) Service {
	return NewService(ServiceDeps{Mailer: ml, ErrorLog: el})
}

// --- Deliver ---

func TestDeliver_RendersTemplate(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, "a@b.com", "Your eventPill Verification Code", "Your verification code is: 482913").Return(nil)

	require.NoError(t, newService(ml, nil).Deliver(context.Background(), "a@b.com", "482913"))
	ml.AssertExpectations(t)
}

func TestDeliver_WrapsTransportFailure(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := newService(ml, nil).Deliver(context.Background(), "a@b.com", "482913")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorContains(t, err, "connection refused")
}

// --- SendCode ---

func TestSendCode_MissingFields(t *testing.T) {
	svc := newService(nil, nil)
	for _, req := range []domain.SendCodeRequest{
		{},
		{Email: "a@b.com"},
		{AuthCode: "482913"},
	} {
		err := svc.SendCode(context.Background(), req)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Email and authentication code are required", ve.Message)
	}
}

func TestSendCode_InvalidEmail(t *testing.T) {
	err := newService(nil, nil).SendCode(context.Background(), domain.SendCodeRequest{Email: "not-an-email", AuthCode: "482913"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Email must be valid and not exceed 254 characters")
}

func TestSendCode_MalformedCode(t *testing.T) {
	svc := newService(nil, nil)
	for _, code := range []string{"12ab", "12345", "1234567", "+12345", "012345"} {
		err := svc.SendCode(context.Background(), domain.SendCodeRequest{Email: "a@b.com", AuthCode: code})
		assert.ErrorIs(t, err, domain.ErrValidation, code)
		assert.EqualError(t, err, "Authentication code must be 6 digits", code)
	}
}

func TestSendCode_InvalidEmailReportedBeforeCode(t *testing.T) {
	err := newService(nil, nil).SendCode(context.Background(), domain.SendCodeRequest{Email: "nope", AuthCode: "12"})
	assert.EqualError(t, err, "Email must be valid and not exceed 254 characters")
}

func TestSendCode_HappyPath(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, "a@b.com", mock.Anything, "Your verification code is: 482913").Return(nil)

	err := newService(ml, nil).SendCode(context.Background(), domain.SendCodeRequest{Email: " A@b.com ", AuthCode: "482913"})
	require.NoError(t, err)
	ml.AssertExpectations(t)
}

func TestSendCode_TransportFailureIsLogged(t *testing.T) {
	ml := &mockMailer{}
	el := &mockErrorLog{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	el.On("Log", mock.Anything, Operation, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, domain.ErrTransport)
	})).Return()

	err := newService(ml, el).SendCode(context.Background(), domain.SendCodeRequest{Email: "a@b.com", AuthCode: "482913"})
	assert.ErrorIs(t, err, domain.ErrTransport)
	el.AssertExpectations(t)
}
