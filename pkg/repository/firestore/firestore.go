package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client       *firestore.Client
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

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to isolate test
// runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.caseRepo.collectionPrefix = prefix
		f.analysis.collectionPrefix = prefix
		f.simulation.collectionPrefix = prefix
		f.revision.collectionPrefix = prefix
		f.entitlement.collectionPrefix = prefix
		f.subscription.collectionPrefix = prefix
		f.profile.collectionPrefix = prefix
		f.invitation.collectionPrefix = prefix
		f.member.collectionPrefix = prefix
		f.notification.collectionPrefix = prefix
		f.accessLog.collectionPrefix = prefix
		f.product.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:       client,
		caseRepo:     newCaseRepository(client),
		analysis:     newAnalysisRepository(client),
		simulation:   newSimulationRepository(client),
		revision:     newRevisionRepository(client),
		entitlement:  newEntitlementRepository(client),
		subscription: newSubscriptionRepository(client),
		profile:      newProfileRepository(client),
		invitation:   newInvitationRepository(client),
		member:       newMemberRepository(client),
		notification: newNotificationRepository(client),
		accessLog:    newAccessLogRepository(client),
		product:      newProductRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Case() interfaces.CaseRepository {
	return f.caseRepo
}

func (f *Firestore) Analysis() interfaces.AnalysisRepository {
	return f.analysis
}

func (f *Firestore) Simulation() interfaces.SimulationRepository {
	return f.simulation
}

func (f *Firestore) Revision() interfaces.RevisionRepository {
	return f.revision
}

func (f *Firestore) Entitlement() interfaces.EntitlementRepository {
	return f.entitlement
}

func (f *Firestore) Subscription() interfaces.SubscriptionRepository {
	return f.subscription
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Invitation() interfaces.InvitationRepository {
	return f.invitation
}

func (f *Firestore) Member() interfaces.MemberRepository {
	return f.member
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) AccessLog() interfaces.AccessLogRepository {
	return f.accessLog
}

func (f *Firestore) Product() interfaces.ProductRepository {
	return f.product
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
