package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, text, html string) error {
	args := m.Called(ctx, to, subject, text, html)
	return args.Error(0)
}

func TestDeliver_Template(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything, "new@example.com", "Welcome to Acme",
		mock.MatchedBy(func(text string) bool { return text != "" }),
		mock.MatchedBy(func(html string) bool { return html != "" }),
	).Return(nil)

	job := NewWelcomeJob("new@example.com", map[string]any{"AppName": "Acme"})
	require.NoError(t, Deliver(context.Background(), s, job))
	s.AssertExpectations(t)
}

func TestDeliver_Raw(t *testing.T) {
	s := new(mockSender)
	s.On("Send", mock.Anything, "a@example.com", "hello", "body", "").Return(nil)

	err := Deliver(context.Background(), s, EmailJob{To: "a@example.com", Subject: "hello", Text: "body"})
	require.NoError(t, err)
	s.AssertExpectations(t)
}

func TestDeliver_Invalid(t *testing.T) {
	s := new(mockSender)

	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{Subject: "x", Text: "y"}), ErrEmptyJob)
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{To: "a@example.com"}), ErrEmptyJob)
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{To: "a@example.com", Template: "nope"}), ErrRender)
	s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliver_SenderError(t *testing.T) {
	s := new(mockSender)
	boom := errors.New("mailgun down")
	s.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom)

	err := Deliver(context.Background(), s, NewWelcomeJob("a@example.com", nil))
	assert.ErrorIs(t, err, boom)
}
