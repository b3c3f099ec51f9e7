package widgets

import (
	"context"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

func (s *service) mdblistWidget() Widget {
	return Widget{
		ID:          "mdblist",
		Title:       "MDBList",
		Version:     "1.0.0",
		Description: "Load custom lists from MDBList.com.",
		Site:        "https://mdblist.com",
		Modules: []Module{
			{
				ID:    "load-list",
				Title: "Load List",
				Params: []Param{
					{Name: "url", Title: "List URL or ID", Type: "input", Description: "e.g. https://mdblist.com/lists/user/list-name or just the numeric id"},
					{Name: "page", Title: "Page", Type: "page"},
					languageParam,
				},
				Handler: s.loadMDBList,
			},
		},
	}
}

func (s *service) loadMDBList(ctx context.Context, args Args) (any, error) {
	if args.ListURL == "" {
		return nil, apperrors.NewMissingConfigError("Please provide a List URL or ID.")
	}
	cat := models.CatalogDescriptor{
		ID:      "mdblist.custom",
		Name:    "MDBList",
		Kind:    models.KindMovie,
		Source:  models.SourceMDBList,
		Locator: args.ListURL,
	}
	return s.fetchCatalog(ctx, cat, args)
}
