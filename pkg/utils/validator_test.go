package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusForm struct {
	Status  string `validate:"required,assignee_status"`
	Overall string `validate:"omitempty,overall_status"`
	Request string `validate:"omitempty,request_status"`
	Phone   string `validate:"omitempty,phone10"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterValidationsOn(v))
	return v
}

func TestRegisterValidationsOn(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		form  statusForm
		valid bool
	}{
		{"合法", statusForm{Status: "in progress", Overall: "unassigned", Request: "Pending", Phone: "0123456789"}, true},
		{"成员状态非法", statusForm{Status: "unassigned"}, false},
		{"整体状态非法", statusForm{Status: "completed", Overall: "done"}, false},
		{"申请状态大小写", statusForm{Status: "completed", Request: "pending"}, false},
		{"手机号9位", statusForm{Status: "completed", Phone: "012345678"}, false},
		{"手机号含字母", statusForm{Status: "completed", Phone: "01234567ab"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(statusForm{Status: "done", Phone: "1"})
	msg := FormatValidationError(err)
	assert.Contains(t, msg, "field 'Status' must be one of: not started, in progress, completed")
	assert.Contains(t, msg, "field 'Phone' must be a 10-digit phone number")

	assert.Empty(t, FormatValidationError(nil))
}
