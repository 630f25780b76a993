package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/repository/memory"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestExportCase(t *testing.T) {
	t.Run("CSV without analysis", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		c, err := repo.Case().Create(ctx, &model.DecisionCase{
			OwnerID:     "user-1",
			Title:       "Launch v2",
			Description: "Ship the rewrite",
		})
		gt.NoError(t, err).Required()

		uc := usecase.New(repo)

		result, err := uc.ExportCase(ctx, c.ID, types.ExportCSV)
		gt.NoError(t, err).Required()

		gt.Value(t, result.ContentType).Equal("text/csv")
		gt.Value(t, result.Filename).Equal("decision-" + c.ID.String() + ".csv")

		lines := strings.Split(string(result.Body), "\n")
		gt.Array(t, lines).Length(10).Required()
		gt.Value(t, lines[0]).Equal(`"Field","Value"`)
		gt.Value(t, lines[1]).Equal(`"Title","Launch v2"`)
		gt.Value(t, lines[3]).Equal(`"Status","draft"`)
		gt.Value(t, lines[4]).Equal(`"Context","N/A"`)
		gt.Value(t, lines[5]).Equal(`"Constraints","N/A"`)
		gt.Value(t, lines[6]).Equal(`"Objectives","N/A"`)
		gt.Value(t, lines[7]).Equal(`"Risks","N/A"`)
		gt.Value(t, lines[9]).Equal(`""`)
		gt.Value(t, strings.Contains(string(result.Body), "Analysis Summary")).Equal(false)
	})

	t.Run("CSV quotes embedded quotes by doubling", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		c, err := repo.Case().Create(ctx, &model.DecisionCase{
			OwnerID:     "user-1",
			Title:       `The "big" bet`,
			Description: "Risky",
		})
		gt.NoError(t, err).Required()

		uc := usecase.New(repo)

		result, err := uc.ExportCase(ctx, c.ID, types.ExportCSV)
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(string(result.Body), `"Title","The ""big"" bet"`)).Equal(true)
	})

	t.Run("CSV appends analysis rows when one exists", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		_, err := repo.Analysis().Create(ctx, &model.Analysis{
			CaseID:               c.ID,
			OwnerID:              c.OwnerID,
			Summary:              "Go with the phased rollout",
			RecommendedPath:      "Phased rollout",
			ProbabilityReasoning: "Comparable launches succeeded",
		})
		gt.NoError(t, err).Required()

		uc := usecase.New(repo)

		result, err := uc.ExportCase(ctx, c.ID, types.ExportCSV)
		gt.NoError(t, err).Required()

		body := string(result.Body)
		gt.Value(t, strings.Contains(body, `"Analysis Summary","Go with the phased rollout"`)).Equal(true)
		gt.Value(t, strings.Contains(body, `"Recommended Path","Phased rollout"`)).Equal(true)
		gt.Value(t, strings.Contains(body, `"Probability Reasoning","Comparable launches succeeded"`)).Equal(true)
	})

	t.Run("HTML is a printable document", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		uc := usecase.New(repo)

		result, err := uc.ExportCase(ctx, c.ID, types.ExportHTML)
		gt.NoError(t, err).Required()

		gt.Value(t, result.ContentType).Equal("text/html")
		gt.Value(t, result.Filename).Equal("decision-" + c.ID.String() + ".html")

		body := string(result.Body)
		gt.Value(t, strings.Contains(body, c.Title)).Equal(true)
		gt.Value(t, strings.Contains(body, "window.print()")).Equal(true)
		gt.Value(t, strings.Contains(body, "Constraints")).Equal(true)
		gt.Value(t, strings.Contains(body, "AI Analysis")).Equal(false)
	})

	t.Run("HTML includes analysis and simulation sections when present", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		_, err := repo.Analysis().Create(ctx, &model.Analysis{
			CaseID:          c.ID,
			OwnerID:         c.OwnerID,
			Summary:         "Proceed with caution",
			RecommendedPath: "Phased rollout",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Simulation().Create(ctx, &model.Simulation{
			CaseID:  c.ID,
			OwnerID: c.OwnerID,
			ExpectedValue: model.ExpectedValue{
				ImpactScore: 7,
				Confidence:  0.8,
			},
		})
		gt.NoError(t, err).Required()

		uc := usecase.New(repo)

		result, err := uc.ExportCase(ctx, c.ID, types.ExportHTML)
		gt.NoError(t, err).Required()

		body := string(result.Body)
		gt.Value(t, strings.Contains(body, "AI Analysis")).Equal(true)
		gt.Value(t, strings.Contains(body, "Proceed with caution")).Equal(true)
		gt.Value(t, strings.Contains(body, "Risk Simulation")).Equal(true)
	})

	t.Run("invalid format", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		uc := usecase.New(repo)

		_, err := uc.ExportCase(ctx, c.ID, "pdf")
		gt.Value(t, err).NotNil()
	})

	t.Run("unknown case", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.ExportCase(context.Background(), types.NewCaseID(), types.ExportCSV)
		gt.Error(t, err).Is(usecase.ErrCaseNotFound)
	})
}
