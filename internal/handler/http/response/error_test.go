package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("month", "month must be between 1 and 12")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"forbidden", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"not found", leave.ErrLeaveRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped conflict", fmt.Errorf("failed to insert salary record: %w", payroll.ErrDuplicatePeriod), http.StatusConflict, "CONFLICT"},
		{"terminal state", leave.ErrInvalidStateTransition, http.StatusConflict, "CONFLICT"},
		{"invalid interval", attendance.ErrInvalidInterval, http.StatusBadRequest, "BAD_REQUEST"},
		{"insufficient balance", leave.ErrInsufficientLeaveBalance, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}
