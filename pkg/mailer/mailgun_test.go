package mailer

import (
	"errors"
	"net/http"
	"testing"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/stretchr/testify/assert"
)

func TestClassifySendError(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		rejected bool
	}{
		{"bad request", http.StatusBadRequest, true},
		{"unauthorized", http.StatusUnauthorized, true},
		{"rate limited", http.StatusTooManyRequests, false},
		{"server error", http.StatusServiceUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifySendError(&mg.UnexpectedResponseError{Expected: []int{http.StatusOK}, Actual: tc.status})
			assert.Equal(t, tc.rejected, errors.Is(err, ErrRejected))
			var ue *mg.UnexpectedResponseError
			assert.ErrorAs(t, err, &ue)
		})
	}

	assert.NoError(t, classifySendError(nil))
	other := errors.New("dial tcp: timeout")
	assert.Same(t, other, classifySendError(other))
}
