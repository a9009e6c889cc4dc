package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title      string `json:"title" validate:"required,min=3"`
	JobType    string `json:"job_type" validate:"omitempty,is-job-type"`
	Currency   string `json:"currency" validate:"omitempty,is-currency"`
	FrameRange string `json:"frame_range" validate:"omitempty,is-frame-range"`
}

func TestValidate_PassesValidStruct(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Title:      "Creature comp",
		JobType:    "freelance",
		Currency:   "USD",
		FrameRange: "1001-1120",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{JobType: "volunteer"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "title")
	assert.Contains(t, vErr.Errors, "job_type")
	assert.NotContains(t, vErr.Errors, "Title")
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		req  sampleRequest
		ok   bool
	}{
		{"valid job type", sampleRequest{Title: "abc", JobType: "studio_salaried"}, true},
		{"invalid job type", sampleRequest{Title: "abc", JobType: "contract"}, false},
		{"valid currency", sampleRequest{Title: "abc", Currency: "EUR"}, true},
		{"lowercase currency", sampleRequest{Title: "abc", Currency: "usd"}, false},
		{"valid frame range", sampleRequest{Title: "abc", FrameRange: "1-240"}, true},
		{"open-ended frame range", sampleRequest{Title: "abc", FrameRange: "1-"}, false},
		{"empty optional fields pass", sampleRequest{Title: "abc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidationError_MessageListsFields(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "title")
}
