package usecase

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CreateCase stores a new decision case and records its creation revision
func (uc *UseCases) CreateCase(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	if c.Title == "" {
		return nil, goerr.New("case title is required")
	}
	if c.OwnerID == "" {
		return nil, goerr.New("case owner is required")
	}

	created, err := uc.repo.Case().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	if _, err := uc.repo.Revision().Create(ctx, &model.Revision{
		CaseID:  created.ID,
		OwnerID: created.OwnerID,
		Type:    types.RevisionCaseCreated,
		Content: "Case created",
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record creation revision", goerr.V("caseID", created.ID))
	}

	return created, nil
}

// GetCase retrieves a case by ID
func (uc *UseCases) GetCase(ctx context.Context, caseID types.CaseID) (*model.DecisionCase, error) {
	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}
	return c, nil
}

// ListCases retrieves all cases owned by a user, newest first
func (uc *UseCases) ListCases(ctx context.Context, ownerID types.UserID) ([]*model.DecisionCase, error) {
	cases, err := uc.repo.Case().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases", goerr.V("ownerID", ownerID))
	}
	return cases, nil
}

// UpdateCase replaces an existing case. A status transition is recorded as
// a revision with the old and new values.
func (uc *UseCases) UpdateCase(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	existing, err := uc.repo.Case().Get(ctx, c.ID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", c.ID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", c.ID))
	}

	c.Status = c.Status.Normalize()
	if !c.Status.IsValid() {
		return nil, goerr.New("invalid case status", goerr.V("status", c.Status))
	}

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V("caseID", c.ID))
	}

	if existing.Status != updated.Status {
		if _, err := uc.repo.Revision().Create(ctx, &model.Revision{
			CaseID:  updated.ID,
			OwnerID: updated.OwnerID,
			Type:    types.RevisionStatusChanged,
			Content: "Status changed",
			Metadata: map[string]any{
				"from": existing.Status.String(),
				"to":   updated.Status.String(),
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to record status revision", goerr.V("caseID", updated.ID))
		}
	}

	return updated, nil
}

// ListRevisions returns the audit trail of a case, newest first
func (uc *UseCases) ListRevisions(ctx context.Context, caseID types.CaseID) ([]*model.Revision, error) {
	revisions, err := uc.repo.Revision().ListByCase(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list revisions", goerr.V("caseID", caseID))
	}
	return revisions, nil
}
