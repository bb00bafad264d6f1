package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForLockAndReceiptCodes(t *testing.T) {
	statuses := map[string]int{
		ErrCodeCustomerLocked:   http.StatusUnprocessableEntity,
		ErrCodeInvalidLineIndex: http.StatusBadRequest,
		ErrCodeInvalidDocType:   http.StatusBadRequest,
		ErrCodeSessionNotFound:  http.StatusNotFound,
		ErrCodeAlreadyExists:    http.StatusConflict,
		ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
		ErrCodeRateLimited:      http.StatusTooManyRequests,
		ErrCodeValidation:       http.StatusBadRequest,
	}
	for code, want := range statuses {
		assert.Equal(t, want, GetHTTPStatus(code), code)
	}
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestDomainCodesNormalize(t *testing.T) {
	cases := []struct{ in, out string }{
		{"CUSTOMER_LOCKED", ErrCodeCustomerLocked},
		{"INVALID_LINE_INDEX", ErrCodeInvalidLineIndex},
		{"SESSION_NOT_FOUND", ErrCodeSessionNotFound},
		{"INVALID_CREDIT_LIMIT", ErrCodeInvalidInput},
		{"INVALID_CODE", ErrCodeInvalidInput},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.out, NormalizeErrorCode(tc.in), tc.in)
	}

	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no status", domainCode, apiCode)
	}
}

func TestEnvelopes(t *testing.T) {
	page := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	assert.True(t, page.Success)
	assert.Nil(t, page.Error)
	assert.Equal(t, &Meta{Total: 41, Page: 2, PageSize: 20, TotalPages: 3}, page.Meta)
	assert.Equal(t, 0, NewSuccessResponseWithMeta(nil, 5, 1, 0).Meta.TotalPages)
	assert.Equal(t, 0, NewSuccessResponseWithMeta(nil, 0, 1, 20).Meta.TotalPages)

	invalid := NewValidationErrorResponse("Request validation failed", "req-1",
		[]ValidationDetail{{Field: "code", Message: "This field is required"}})
	assert.False(t, invalid.Success)
	assert.Nil(t, invalid.Data)
	assert.Equal(t, ErrCodeValidation, invalid.Error.Code)
	assert.Equal(t, "req-1", invalid.Error.RequestID)
	assert.Len(t, invalid.Error.Details, 1)
}

func TestListRequestFilter(t *testing.T) {
	f := DefaultListRequest().Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)

	f = ListRequest{Page: 0, PageSize: 500, Search: "clinic"}.Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "clinic", f.Search)
}
