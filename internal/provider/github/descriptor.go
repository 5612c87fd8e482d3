// Package github declares the GitHub data provider: its catalog descriptor
// and the token-authenticated API client.
package github

import (
	"context"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/kind"
	"github.com/datadonation/dds/internal/model"
)

// ProviderType is the registry key of the GitHub provider.
const ProviderType = "github"

// Register adds the GitHub descriptor to the catalog registry. Call once at
// startup.
func Register() error {
	repositories, err := repositoriesCategory()
	if err != nil {
		return err
	}

	return catalog.Register(catalog.Descriptor{
		Type:       ProviderType,
		Label:      "GitHub",
		Categories: []catalog.Category{repositories},
	})
}

func repositoriesCategory() (catalog.Category, error) {
	provenance := []model.Origin{
		{Method: "fetch_repositories", Endpoint: "https://api.github.com/user/repos"},
	}

	repoCount, err := model.ExpandBuiltin(model.BuiltinSpec{
		Attribute: model.Attribute{
			Name:                 "public_repo_count",
			Label:                "Public repository count",
			Kind:                 kind.Number,
			Description:          "Number of public repositories owned by the account.",
			TestValuePlaceholder: "23",
			Provenance:           provenance,
		},
		Extractor: model.Extractor{Plain: extractPublicRepoCount},
	})
	if err != nil {
		return catalog.Category{}, err
	}

	return catalog.Category{
		Name:                   "repositories",
		Label:                  "Repositories",
		Provenance:             provenance,
		CustomVariablesEnabled: true,
		BuiltinGroups:          [][]model.BuiltinVariable{repoCount},
		CVAttributes: []model.CustomAttribute{
			{
				Attribute: model.Attribute{
					Name:                 "name",
					Label:                "Repository name",
					Kind:                 kind.Text,
					TestValuePlaceholder: "my-project",
					Provenance:           provenance,
				},
				FieldKey: "name",
			},
			{
				Attribute: model.Attribute{
					Name:                 "language",
					Label:                "Primary language",
					Kind:                 kind.Text,
					TestValuePlaceholder: "Go",
					Provenance:           provenance,
				},
				FieldKey: "language",
			},
			{
				Attribute: model.Attribute{
					Name:                 "stargazers_count",
					Label:                "Stars",
					Kind:                 kind.Number,
					TestValuePlaceholder: "42",
					Provenance:           provenance,
				},
				FieldKey: "stargazers_count",
			},
			{
				Attribute: model.Attribute{
					Name:                 "forks_count",
					Label:                "Forks",
					Kind:                 kind.Number,
					TestValuePlaceholder: "7",
					Provenance:           provenance,
				},
				FieldKey: "forks_count",
			},
			{
				Attribute: model.Attribute{
					Name:                 "created_at",
					Label:                "Created at",
					Kind:                 kind.Date,
					TestValuePlaceholder: "2020-03-14T09:26:53Z",
					Provenance:           provenance,
				},
				FieldKey: "created_at",
			},
			{
				Attribute: model.Attribute{
					Name:                 "pushed_at",
					Label:                "Last push",
					Kind:                 kind.Date,
					TestValuePlaceholder: "2024-04-01T18:00:00Z",
					Provenance:           provenance,
				},
				FieldKey: "pushed_at",
			},
		},
	}, nil
}

func extractPublicRepoCount(ctx context.Context, src model.Source) (any, error) {
	records, err := src.FetchRecords(ctx, "repositories")
	if err != nil {
		return nil, err
	}

	count := 0
	for _, record := range records {
		if private, ok := record["private"].(bool); ok && private {
			continue
		}
		count++
	}
	return count, nil
}
