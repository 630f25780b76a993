package memory

import (
	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	caseRepo     *caseRepository
	analysis     *analysisRepository
	simulation   *simulationRepository
	revision     *revisionRepository
	entitlement  *entitlementRepository
	subscription *subscriptionRepository
	profile      *profileRepository
	invitation   *invitationRepository
	member       *memberRepository
	notification *notificationRepository
	accessLog    *accessLogRepository
	product      *productRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		caseRepo:     newCaseRepository(),
		analysis:     newAnalysisRepository(),
		simulation:   newSimulationRepository(),
		revision:     newRevisionRepository(),
		entitlement:  newEntitlementRepository(),
		subscription: newSubscriptionRepository(),
		profile:      newProfileRepository(),
		invitation:   newInvitationRepository(),
		member:       newMemberRepository(),
		notification: newNotificationRepository(),
		accessLog:    newAccessLogRepository(),
		product:      newProductRepository(),
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}

func (m *Memory) Simulation() interfaces.SimulationRepository {
	return m.simulation
}

func (m *Memory) Revision() interfaces.RevisionRepository {
	return m.revision
}

func (m *Memory) Entitlement() interfaces.EntitlementRepository {
	return m.entitlement
}

func (m *Memory) Subscription() interfaces.SubscriptionRepository {
	return m.subscription
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Invitation() interfaces.InvitationRepository {
	return m.invitation
}

func (m *Memory) Member() interfaces.MemberRepository {
	return m.member
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) AccessLog() interfaces.AccessLogRepository {
	return m.accessLog
}

func (m *Memory) Product() interfaces.ProductRepository {
	return m.product
}

func (m *Memory) Close() error {
	return nil
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
