package widgets

import "context"

func (s *service) introWidget() Widget {
	return Widget{
		ID:          "introdb",
		Title:       "IntroDB",
		Version:     "1.0.0",
		Description: "Skip-intro timestamps for episodes.",
		Site:        "https://introdb.app",
		Modules: []Module{
			{
				ID:      "skip-intro",
				Title:   "Get Intro Timestamps",
				Type:    "stream",
				Params:  []Param{},
				Handler: s.getIntroTimestamps,
			},
		},
	}
}

// getIntroTimestamps returns the intro window for one episode, or null when
// unknown. It never errors; the player treats null as "no intro data".
func (s *service) getIntroTimestamps(ctx context.Context, args Args) (any, error) {
	return s.introdb.Timestamps(ctx, args.IMDBID, args.Season, args.Episode), nil
}
