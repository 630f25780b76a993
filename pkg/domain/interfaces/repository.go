package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by any repository when a requested record does not
// exist. Callers distinguish a missing record from a failed read with
// errors.Is.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Analysis() AnalysisRepository
	Simulation() SimulationRepository
	Revision() RevisionRepository
	Entitlement() EntitlementRepository
	Subscription() SubscriptionRepository
	Profile() ProfileRepository
	Invitation() InvitationRepository
	Member() MemberRepository
	Notification() NotificationRepository
	AccessLog() AccessLogRepository
	Product() ProductRepository

	Close() error
}
