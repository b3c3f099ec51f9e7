package widgets

import (
	"context"
	"fmt"
	"strings"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/client"
	"github.com/inchstudio/forward-catalogs/internal/models"
)

func (s *service) streamsWidget() Widget {
	return Widget{
		ID:          "stremio-streams",
		Title:       "Stremio Streams",
		Version:     "1.0.0",
		Description: "Fetch playable streams from any Stremio-compatible addon.",
		Site:        "https://stremio.com",
		Modules: []Module{
			{
				ID:    "fetch-streams",
				Title: "Fetch Streams",
				Type:  "stream",
				Params: []Param{
					{Name: "addonUrl", Title: "Addon Base URL", Type: "input", Description: "Addon base URL, with or without /manifest.json"},
				},
				Handler: s.fetchStreams,
			},
		},
	}
}

type stremioStream struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	InfoHash string `json:"infoHash"`
}

type stremioStreams struct {
	Streams []stremioStream `json:"streams"`
}

// fetchStreams queries {addon}/stream/{type}/{id}.json. Movies use the bare
// id (tt0944947 or tmdb:1399); episodes append season and episode
// (tt0944947:1:2).
func (s *service) fetchStreams(ctx context.Context, args Args) (any, error) {
	if args.AddonURL == "" {
		return nil, apperrors.NewMissingConfigError("Addon URL is missing. Please configure it in the widget settings.")
	}
	if args.IMDBID == "" && args.TMDBID == "" {
		// Addons key streams on ids; nothing to ask for.
		return []models.Stream{}, nil
	}

	baseURL := strings.TrimSpace(args.AddonURL)
	baseURL = strings.TrimSuffix(baseURL, "/manifest.json")
	baseURL = strings.TrimRight(baseURL, "/")

	streamID := args.IMDBID
	if streamID == "" {
		streamID = "tmdb:" + args.TMDBID
	}
	streamType := "movie"
	if args.Kind == models.KindTV {
		streamType = "series"
		streamID = fmt.Sprintf("%s:%d:%d", streamID, args.Season, args.Episode)
	}

	requestURL := fmt.Sprintf("%s/stream/%s/%s.json", baseURL, streamType, streamID)
	var response stremioStreams
	if err := client.GetJSON(ctx, s.http, "stremio", requestURL, nil, nil, &response); err != nil {
		return nil, err
	}

	streams := make([]models.Stream, 0, len(response.Streams))
	for _, stream := range response.Streams {
		streamURL := stream.URL
		if streamURL == "" && stream.InfoHash != "" {
			streamURL = "magnet:?xt=urn:btih:" + stream.InfoHash
		}
		if streamURL == "" {
			continue
		}
		name := stream.Name
		if name == "" {
			name = "Stream"
		}
		streams = append(streams, models.Stream{
			Name:        name,
			Description: stream.Title,
			URL:         streamURL,
		})
	}
	return streams, nil
}
