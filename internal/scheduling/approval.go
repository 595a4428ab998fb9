package scheduling

// DefaultApprovalThreshold is the participant count at which a meeting needs
// sign-off even in rooms that do not force approval.
const DefaultApprovalThreshold = 20

// ApprovalPolicy decides at creation time whether a meeting starts in
// PENDING_APPROVAL. The threshold is injected at construction so the
// decision is deterministic per instance, never read from process globals.
type ApprovalPolicy struct {
	threshold int
}

func NewApprovalPolicy(threshold int) ApprovalPolicy {
	if threshold <= 0 {
		threshold = DefaultApprovalThreshold
	}
	return ApprovalPolicy{threshold: threshold}
}

// RequiresApproval is pure: same inputs always yield the same decision.
func (p ApprovalPolicy) RequiresApproval(roomNeedsApproval bool, participantCount int) bool {
	return roomNeedsApproval || participantCount >= p.threshold
}

func (p ApprovalPolicy) Threshold() int {
	return p.threshold
}
