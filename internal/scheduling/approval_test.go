package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalPolicy_RequiresApproval(t *testing.T) {
	policy := NewApprovalPolicy(20)

	tests := []struct {
		name             string
		roomNeedApproval bool
		participants     int
		want             bool
	}{
		{"small meeting in unrestricted room", false, 3, false},
		{"restricted room always needs approval", true, 1, true},
		{"just below threshold", false, 19, false},
		{"at threshold", false, 20, true},
		{"above threshold", false, 50, true},
		{"restricted room above threshold", true, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.RequiresApproval(tt.roomNeedApproval, tt.participants))
		})
	}
}

func TestNewApprovalPolicy_DefaultsThreshold(t *testing.T) {
	assert.Equal(t, DefaultApprovalThreshold, NewApprovalPolicy(0).Threshold())
	assert.Equal(t, DefaultApprovalThreshold, NewApprovalPolicy(-5).Threshold())
	assert.Equal(t, 8, NewApprovalPolicy(8).Threshold())
}

func TestApprovalPolicy_Deterministic(t *testing.T) {
	a := NewApprovalPolicy(10)
	b := NewApprovalPolicy(30)

	// Two instances with different thresholds disagree on the same input;
	// each instance is consistent with itself.
	assert.True(t, a.RequiresApproval(false, 15))
	assert.False(t, b.RequiresApproval(false, 15))
	assert.True(t, a.RequiresApproval(false, 15))
}
