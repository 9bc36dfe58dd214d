package enums

import "fmt"

// NotificationType labels in-app notifications.
type NotificationType string

const (
	NotificationApplicationReceived  NotificationType = "application_received"
	NotificationApplicationApproved  NotificationType = "application_approved"
	NotificationApplicationRejected  NotificationType = "application_rejected"
	NotificationDeliverableSubmitted NotificationType = "deliverable_submitted"
	NotificationDeliverableApproved  NotificationType = "deliverable_approved"
	NotificationDeliverableRejected  NotificationType = "deliverable_rejected"
	NotificationPaymentReceived      NotificationType = "payment_received"
	NotificationReviewReceived       NotificationType = "review_received"
	NotificationCampaignCompleted    NotificationType = "campaign_completed"
	NotificationContractReady        NotificationType = "contract_ready"
	NotificationContractSigned       NotificationType = "contract_signed"
)

var validNotificationTypes = []NotificationType{
	NotificationApplicationReceived,
	NotificationApplicationApproved,
	NotificationApplicationRejected,
	NotificationDeliverableSubmitted,
	NotificationDeliverableApproved,
	NotificationDeliverableRejected,
	NotificationPaymentReceived,
	NotificationReviewReceived,
	NotificationCampaignCompleted,
	NotificationContractReady,
	NotificationContractSigned,
}

// String implements fmt.Stringer.
func (t NotificationType) String() string {
	return string(t)
}

// IsValid reports whether the value is known.
func (t NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
