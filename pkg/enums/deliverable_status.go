package enums

import "fmt"

// DeliverableStatus tracks brand review of submitted content. Rejected and
// revision_requested rows stay in place; resubmission creates a new row.
type DeliverableStatus string

const (
	DeliverableStatusPending           DeliverableStatus = "pending"
	DeliverableStatusApproved          DeliverableStatus = "approved"
	DeliverableStatusRejected          DeliverableStatus = "rejected"
	DeliverableStatusRevisionRequested DeliverableStatus = "revision_requested"
)

var validDeliverableStatuses = []DeliverableStatus{
	DeliverableStatusPending,
	DeliverableStatusApproved,
	DeliverableStatusRejected,
	DeliverableStatusRevisionRequested,
}

// String implements fmt.Stringer.
func (s DeliverableStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s DeliverableStatus) IsValid() bool {
	for _, candidate := range validDeliverableStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDeliverableStatus converts raw input into a DeliverableStatus.
func ParseDeliverableStatus(value string) (DeliverableStatus, error) {
	for _, candidate := range validDeliverableStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deliverable status %q", value)
}
