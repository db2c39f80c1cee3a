package service

import (
	"firesale/pkg/config"

	"github.com/spf13/viper"
)

// RecentService keeps the most-recently-opened list in the app config.
type RecentService struct {
	v *viper.Viper
}

func NewRecentService(v *viper.Viper) *RecentService {
	return &RecentService{v: v}
}

// Add moves path to the front, drops duplicates, trims to recent_limit and
// persists the list. The in-memory list is updated even if persisting fails.
func (s *RecentService) Add(path string) error {
	out := []string{path}
	for _, p := range s.List() {
		if p != path {
			out = append(out, p)
		}
	}

	limit := s.v.GetInt(config.KeyRecentLimit)
	if limit <= 0 {
		limit = config.DefaultRecentLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}

	s.v.Set(config.KeyRecentFiles, out)
	return config.Save(s.v)
}

// List returns paths, most recent first.
func (s *RecentService) List() []string {
	return s.v.GetStringSlice(config.KeyRecentFiles)
}
